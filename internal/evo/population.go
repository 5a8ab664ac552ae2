package evo

// CreatePopulation builds n organisms by calling organism once per index, in
// index order. Failures inside organism are not recovered.
func CreatePopulation[G any](n int, organism OrganismFunc[G]) Population[G] {
	if n <= 0 {
		return Population[G]{}
	}
	population := make(Population[G], 0, n)
	for i := 0; i < n; i++ {
		population = append(population, organism(i))
	}
	return population
}

// CreateGenome builds a genome of the given length, one gene() call per
// position.
func CreateGenome[G any](length int, gene GeneFunc[G]) Genome[G] {
	if length <= 0 {
		return Genome[G]{}
	}
	genome := make(Genome[G], length)
	for i := range genome {
		genome[i] = gene()
	}
	return genome
}

// GenomeOrganism is the default organism constructor: a fresh genome of the
// given length.
func GenomeOrganism[G any](length int, gene GeneFunc[G]) OrganismFunc[G] {
	return func(int) *Organism[G] {
		return &Organism[G]{Genome: CreateGenome(length, gene)}
	}
}
