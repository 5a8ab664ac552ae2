package evo

import (
	"math/rand"
)

// bitOptions is a OneMax setup: fitness is the fraction of 1 genes.
func bitOptions(seed int64, populationSize, genomeLength, generations int) Options[int] {
	rng := rand.New(rand.NewSource(seed))
	gene := func() int { return rng.Intn(2) }
	return Options[int]{
		PopulationSize: populationSize,
		GenomeLength:   genomeLength,
		Gene:           gene,
		MatingPool:     proportionalPool[int],
		Crossover:      midpoint[int],
		MutationRate:   Rate(0.01),
		Mutate: func(child *Organism[int], rate float64, gene GeneFunc[int]) {
			for i := range child.Genome {
				if rng.Float64() < rate {
					child.Genome[i] = gene()
				}
			}
		},
		Fitness:      onesFraction,
		ShouldFinish: func(c ProblemContext) bool { return c.Generation >= generations },
		Rand:         rng,
	}
}

func onesFraction(o *Organism[int]) float64 {
	total := 0
	for _, g := range o.Genome {
		total += g
	}
	return float64(total) / float64(len(o.Genome))
}

func proportionalPool[G any](population Population[G], populationFitness PopulationFitness, maxFitness float64) Population[G] {
	if maxFitness <= 0 {
		return append(Population[G](nil), population...)
	}
	pool := make(Population[G], 0, len(population)*10)
	for i, o := range population {
		n := int(populationFitness[i] / maxFitness * 10)
		for j := 0; j < n; j++ {
			pool = append(pool, o)
		}
	}
	return pool
}

func midpoint[G any](a, b *Organism[G]) *Organism[G] {
	m := len(a.Genome) / 2
	genome := make(Genome[G], 0, len(a.Genome))
	genome = append(genome, a.Genome[:m]...)
	genome = append(genome, b.Genome[m:]...)
	return &Organism[G]{Genome: genome}
}

func intOrganisms(genomes ...[]int) Population[int] {
	population := make(Population[int], 0, len(genomes))
	for _, g := range genomes {
		population = append(population, &Organism[int]{Genome: g})
	}
	return population
}
