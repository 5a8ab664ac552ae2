package strategy

import (
	"math"
	"math/rand"

	"genevo/internal/evo"
)

const (
	DefaultProportionateScale = 100
	DefaultTournamentSize     = 3
)

// FitnessProportionate repeats each organism floor(f/maxFitness*scale) times.
// When maxFitness is not positive every organism enters once, and a pool that
// would come out empty falls back to the whole population.
func FitnessProportionate[G any](scale int) evo.MatingPoolFunc[G] {
	if scale <= 0 {
		scale = DefaultProportionateScale
	}
	return func(population evo.Population[G], populationFitness evo.PopulationFitness, maxFitness float64) evo.Population[G] {
		if maxFitness <= 0 {
			return append(evo.Population[G](nil), population...)
		}

		matingPool := make(evo.Population[G], 0, len(population)*scale/2)
		for i, o := range population {
			n := int(math.Floor(Remap(populationFitness[i], 0, maxFitness, 0, 1) * float64(scale)))
			for j := 0; j < n; j++ {
				matingPool = append(matingPool, o)
			}
		}
		if len(matingPool) == 0 {
			return append(evo.Population[G](nil), population...)
		}
		return matingPool
	}
}

// Tournament fills the pool with the winners of rounds tournaments, each
// between size entrants drawn with replacement. rounds <= 0 uses the
// population size.
func Tournament[G any](rng *rand.Rand, size, rounds int) evo.MatingPoolFunc[G] {
	if size <= 0 {
		size = DefaultTournamentSize
	}
	return func(population evo.Population[G], populationFitness evo.PopulationFitness, _ float64) evo.Population[G] {
		if len(population) == 0 {
			return nil
		}
		n := rounds
		if n <= 0 {
			n = len(population)
		}

		matingPool := make(evo.Population[G], 0, n)
		for r := 0; r < n; r++ {
			best := rng.Intn(len(population))
			for i := 1; i < size; i++ {
				candidate := rng.Intn(len(population))
				if populationFitness[candidate] > populationFitness[best] {
					best = candidate
				}
			}
			matingPool = append(matingPool, population[best])
		}
		return matingPool
	}
}
