package strategy

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genevo/internal/evo"
)

func targetOptions(seed int64, target string, populationSize int, rate float64, generations int) evo.Options[rune] {
	rng := rand.New(rand.NewSource(seed))
	return evo.Options[rune]{
		PopulationSize: populationSize,
		GenomeLength:   len([]rune(target)),
		Gene:           RuneGene(rng, DefaultAlphabet),
		MatingPool:     FitnessProportionate[rune](DefaultProportionateScale),
		Crossover:      MidpointCrossover[rune],
		MutationRate:   evo.Rate(rate),
		Mutate:         PointMutation[rune](rng),
		Fitness:        TargetMatch([]rune(target)),
		ShouldFinish:   GenerationLimit(generations),
		Rand:           rng,
	}
}

func TestTargetStringConverges(t *testing.T) {
	opts := targetOptions(2024, "hello", 50, 0.01, 200)
	var averages []float64
	opts.OnGeneratePopulation = evo.ObserverFunc[rune](func(e evo.GenerationEvent[rune]) {
		s, err := evo.Stats(e.Population, e.PopulationFitness)
		require.NoError(t, err)
		averages = append(averages, s.AvgFitness)
	})

	result, err := evo.Evolve(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, averages, 201)

	mean := func(xs []float64) float64 {
		total := 0.0
		for _, x := range xs {
			total += x
		}
		return total / float64(len(xs))
	}
	first, middle, last := mean(averages[:20]), mean(averages[90:110]), mean(averages[181:])
	assert.Greater(t, middle, first)
	assert.Greater(t, last, first)

	aligned, err := result.Aligned(context.Background(), evo.FitnessOptions[rune]{Fitness: opts.Fitness})
	require.NoError(t, err)
	s, err := evo.Stats(aligned.Population, aligned.PopulationFitness)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.AvgFitness, 0.5)
	assert.Len(t, s.Fittest.Genome, 5)
}

func TestTournamentSelectionDrivesEvolution(t *testing.T) {
	opts := targetOptions(7, "genevo", 40, 0.02, 120)
	opts.MatingPool = Tournament[rune](opts.Rand, 3, 0)

	result, err := evo.Evolve(context.Background(), opts)
	require.NoError(t, err)
	aligned, err := result.Aligned(context.Background(), evo.FitnessOptions[rune]{Fitness: opts.Fitness})
	require.NoError(t, err)
	s, err := evo.Stats(aligned.Population, aligned.PopulationFitness)
	require.NoError(t, err)
	assert.Greater(t, s.AvgFitness, 0.5)
}
