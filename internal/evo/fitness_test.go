package evo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePopulationFitnessIsIndexAligned(t *testing.T) {
	population := intOrganisms([]int{1, 1}, []int{0, 0}, []int{1, 0})
	var order []int
	fit, err := CalculatePopulationFitness(context.Background(), population, FitnessOptions[int]{
		Fitness: func(o *Organism[int]) float64 {
			order = append(order, o.Genome[0]*10+o.Genome[1])
			return onesFraction(o)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, PopulationFitness{1, 0, 0.5}, fit)
	assert.Equal(t, []int{11, 0, 10}, order)
}

func TestCalculatePopulationFitnessParallelMatchesSequential(t *testing.T) {
	population := make(Population[int], 0, 64)
	for i := 0; i < 64; i++ {
		population = append(population, &Organism[int]{Genome: Genome[int]{i}})
	}
	var calls atomic.Int64
	score := func(o *Organism[int]) float64 {
		calls.Add(1)
		return float64(o.Genome[0]) * 1.5
	}

	sequential, err := CalculatePopulationFitness(context.Background(), population, FitnessOptions[int]{Fitness: score})
	require.NoError(t, err)
	parallel, err := CalculatePopulationFitness(context.Background(), population, FitnessOptions[int]{Fitness: score, Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
	assert.EqualValues(t, 128, calls.Load())
}

func TestCalculatePopulationFitnessParallelRecoversPanic(t *testing.T) {
	population := intOrganisms([]int{0}, []int{1}, []int{2})
	_, err := CalculatePopulationFitness(context.Background(), population, FitnessOptions[int]{
		Workers: 2,
		Fitness: func(o *Organism[int]) float64 {
			if o.Genome[0] == 1 {
				panic("bad organism")
			}
			return 1
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organism 1 panicked")
	phase, ok := PhaseOf(err)
	require.True(t, ok)
	assert.Equal(t, PhaseFitness, phase)
}

func TestCalculatePopulationFitnessRejectsEmptyPopulation(t *testing.T) {
	_, err := CalculatePopulationFitness(context.Background(), Population[int]{}, FitnessOptions[int]{Fitness: onesFraction})
	require.ErrorIs(t, err, ErrEmptyPopulation)

	var pe *PhaseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, PhaseFitness, pe.Phase)
}

func TestCalculatePopulationFitnessRequiresFunction(t *testing.T) {
	_, err := CalculatePopulationFitness(context.Background(), intOrganisms([]int{1}), FitnessOptions[int]{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
