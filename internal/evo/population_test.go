package evo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePopulationCallsConstructorInIndexOrder(t *testing.T) {
	var calls []int
	population := CreatePopulation(5, func(i int) *Organism[int] {
		calls = append(calls, i)
		return &Organism[int]{Genome: Genome[int]{i}}
	})

	require.Len(t, population, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, calls)
	for i, o := range population {
		assert.Equal(t, i, o.Genome[0])
	}
}

func TestCreatePopulationNonPositiveSizeIsEmpty(t *testing.T) {
	assert.Empty(t, CreatePopulation(0, func(int) *Organism[int] { return &Organism[int]{} }))
	assert.Empty(t, CreatePopulation(-3, func(int) *Organism[int] { return &Organism[int]{} }))
}

func TestCreatePopulationPropagatesConstructorPanic(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		CreatePopulation(3, func(i int) *Organism[int] {
			if i == 1 {
				panic("boom")
			}
			return &Organism[int]{}
		})
	})
}

func TestCreateGenomeCallsGenePerPosition(t *testing.T) {
	next := 0
	genome := CreateGenome(4, func() int {
		next++
		return next
	})
	assert.Equal(t, Genome[int]{1, 2, 3, 4}, genome)
	assert.Empty(t, CreateGenome(0, func() int { return 1 }))
}

func TestGenomeOrganismBuildsIndependentGenomes(t *testing.T) {
	build := GenomeOrganism(3, func() int { return 7 })
	a, b := build(0), build(1)
	a.Genome[0] = 1

	assert.Equal(t, Genome[int]{7, 7, 7}, b.Genome)
	assert.Len(t, a.Genome, 3)
}

func TestOrganismCloneCopiesGenome(t *testing.T) {
	o := &Organism[int]{Genome: Genome[int]{1, 2}}
	c := o.Clone()
	c.Genome[0] = 9

	assert.Equal(t, 1, o.Genome[0])
	assert.Nil(t, (*Organism[int])(nil).Clone())
}
