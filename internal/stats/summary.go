package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"genevo/internal/evo"
	"genevo/internal/model"
)

// RenderFunc formats a genome for reports. A nil RenderFunc leaves the
// fittest genome out of the record.
type RenderFunc[G any] func(evo.Genome[G]) string

// Summarize reduces a population and the fitness vector computed for it to a
// record. Ties for best resolve to the lowest index.
func Summarize[G any](population evo.Population[G], populationFitness evo.PopulationFitness, generation int, render RenderFunc[G]) (model.GenerationRecord, error) {
	s, err := evo.Stats(population, populationFitness)
	if err != nil {
		return model.GenerationRecord{}, err
	}

	record := model.GenerationRecord{
		Generation:   generation,
		BestFitness:  populationFitness[s.FittestIndex],
		MeanFitness:  s.AvgFitness,
		MinFitness:   floats.Min(populationFitness),
		TotalFitness: s.TotalFitness,
		FittestIndex: s.FittestIndex,
	}
	if len(populationFitness) > 1 {
		_, record.StdDevFitness = stat.MeanStdDev(populationFitness, nil)
	}
	if render != nil && s.Fittest != nil {
		record.Fittest = render(s.Fittest.Genome)
	}
	return record, nil
}

// BestByGeneration extracts the best-fitness series from records.
func BestByGeneration(records []model.GenerationRecord) []float64 {
	series := make([]float64, len(records))
	for i, r := range records {
		series[i] = r.BestFitness
	}
	return series
}
