package genevo

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvolveThroughFacade(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	target := []rune("genevo")
	var events []GenerationEvent[rune]

	result, err := Evolve(context.Background(), EvolveOptions[rune]{
		PopulationSize: 60,
		GenomeLength:   len(target),
		Gene:           RuneGene(rng, DefaultAlphabet),
		MatingPool:     FitnessProportionate[rune](0),
		Crossover:      MidpointCrossover[rune],
		MutationRate:   Rate(0.02),
		Mutate:         PointMutation[rune](rng),
		Fitness:        TargetMatch(target),
		ShouldFinish:   GenerationLimit(25),
		OnGeneratePopulation: ObserverFunc[rune](func(e GenerationEvent[rune]) {
			events = append(events, e)
		}),
		Rand: rng,
	})
	require.NoError(t, err)
	assert.Len(t, events, 26)
	assert.Equal(t, 25, result.Context.Generation)

	s, err := Stats(result.Population, result.PopulationFitness)
	require.NoError(t, err)
	assert.Len(t, s.Fittest.Genome, len(target))
}

func TestFacadeErrorsArePhased(t *testing.T) {
	_, err := Evolve(context.Background(), EvolveOptions[int]{})
	require.ErrorIs(t, err, ErrInvalidConfig)
	phase, ok := PhaseOf(err)
	require.True(t, ok)
	assert.Equal(t, Phase("configuration"), phase)
}

func TestFacadeBuildingBlocks(t *testing.T) {
	ctx := context.Background()
	gene := func() int { return 1 }
	population := CreatePopulation(4, GenomeOrganism(3, GeneFunc[int](gene)))
	require.Len(t, population, 4)
	assert.Equal(t, Genome[int]{1, 1, 1}, CreateGenome(3, GeneFunc[int](gene)))

	fitness, err := CalculatePopulationFitness(ctx, population, FitnessOptions[int]{Fitness: TargetMatch([]int{1, 0, 1})})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, MaxFitness(fitness), 1e-12)

	pool, err := CreateMatingPool(population, fitness, Tournament[int](rand.New(rand.NewSource(1)), 2, 4))
	require.NoError(t, err)
	require.Len(t, pool, 4)

	next, err := Mate(rand.New(rand.NewSource(1)), population, pool, MateOptions[int]{
		MutationRate: 0,
		Crossover:    MidpointCrossover[int],
		Mutate:       PointMutation[int](rand.New(rand.NewSource(1))),
		Gene:         gene,
		GenomeLength: 3,
	})
	require.NoError(t, err)
	assert.Len(t, next, 4)
}
