package evo

import "fmt"

// MaxFitness returns the largest score in the vector. The running maximum
// starts at 0, so an empty or all-negative vector yields 0.
func MaxFitness(populationFitness PopulationFitness) float64 {
	maxFitness := 0.0
	for _, fitness := range populationFitness {
		if fitness > maxFitness {
			maxFitness = fitness
		}
	}
	return maxFitness
}

// CreateMatingPool computes the generation's max fitness and hands the
// population to the caller's selection policy. The engine does not inspect
// the returned pool; Mate rejects an empty one.
//
// Selection policies receive maxFitness == 0 whenever no organism scored
// above zero and must not divide by it unguarded.
func CreateMatingPool[G any](population Population[G], populationFitness PopulationFitness, matingPool MatingPoolFunc[G]) (Population[G], error) {
	if matingPool == nil {
		return nil, phaseErr(PhaseSelection, fmt.Errorf("%w: mating pool function is required", ErrInvalidConfig))
	}
	if err := checkAligned(population, populationFitness); err != nil {
		return nil, phaseErr(PhaseSelection, err)
	}
	return matingPool(population, populationFitness, MaxFitness(populationFitness)), nil
}

func checkAligned[G any](population Population[G], populationFitness PopulationFitness) error {
	if len(population) == 0 {
		return ErrEmptyPopulation
	}
	if len(population) != len(populationFitness) {
		return fmt.Errorf("%w: population=%d fitness=%d", ErrFitnessMismatch, len(population), len(populationFitness))
	}
	return nil
}
