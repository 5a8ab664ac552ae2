package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"genevo/internal/evo"
)

func TestMidpointCrossover(t *testing.T) {
	a := &evo.Organism[rune]{Genome: evo.Genome[rune]("aaaaa")}
	b := &evo.Organism[rune]{Genome: evo.Genome[rune]("bbbbb")}

	child := MidpointCrossover(a, b)
	assert.Equal(t, "aabbb", GenomeString(child.Genome))

	child.Genome[0] = 'z'
	assert.Equal(t, "aaaaa", GenomeString(a.Genome))
}

func TestPointMutationRespectsRate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	mutate := PointMutation[rune](rng)
	gene := func() rune { return 'x' }

	child := &evo.Organism[rune]{Genome: evo.Genome[rune]("abcdef")}
	mutate(child, 0, gene)
	assert.Equal(t, "abcdef", GenomeString(child.Genome))

	mutate(child, 1, gene)
	assert.Equal(t, "xxxxxx", GenomeString(child.Genome))
}

func TestPointMutationRateIsPerGene(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	mutate := PointMutation[int](rng)
	child := &evo.Organism[int]{Genome: make(evo.Genome[int], 10000)}
	mutate(child, 0.1, func() int { return 1 })

	mutated := 0
	for _, g := range child.Genome {
		mutated += g
	}
	assert.InDelta(t, 1000, mutated, 150)
}

func TestGenerationLimit(t *testing.T) {
	finish := GenerationLimit(3)
	assert.False(t, finish(evo.ProblemContext{Generation: 2}))
	assert.True(t, finish(evo.ProblemContext{Generation: 3}))
	assert.True(t, finish(evo.ProblemContext{Generation: 4}))
}
