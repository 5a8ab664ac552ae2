package evo

import "gonum.org/v1/gonum/floats"

// Stats reports the fittest organism (first maximum on ties), its index, and
// the total and average fitness of a non-empty, index-aligned pair.
func Stats[G any](population Population[G], populationFitness PopulationFitness) (EvolutionStats[G], error) {
	if err := checkAligned(population, populationFitness); err != nil {
		return EvolutionStats[G]{}, phaseErr(PhaseStatistics, err)
	}

	fittestIndex := floats.MaxIdx(populationFitness)
	totalFitness := floats.Sum(populationFitness)
	return EvolutionStats[G]{
		Fittest:      population[fittestIndex],
		FittestIndex: fittestIndex,
		AvgFitness:   totalFitness / float64(len(populationFitness)),
		TotalFitness: totalFitness,
	}, nil
}
