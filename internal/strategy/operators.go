package strategy

import (
	"math/rand"

	"genevo/internal/evo"
)

// MidpointCrossover takes genes [0, len/2) from a and the rest from b into a
// freshly allocated genome.
func MidpointCrossover[G any](a, b *evo.Organism[G]) *evo.Organism[G] {
	midpoint := len(a.Genome) / 2
	genome := make(evo.Genome[G], 0, len(a.Genome))
	genome = append(genome, a.Genome[:midpoint]...)
	if midpoint < len(b.Genome) {
		genome = append(genome, b.Genome[midpoint:]...)
	}
	return &evo.Organism[G]{Genome: genome}
}

// PointMutation replaces each gene independently with probability
// mutationRate.
func PointMutation[G any](rng *rand.Rand) evo.MutationFunc[G] {
	return func(child *evo.Organism[G], mutationRate float64, gene evo.GeneFunc[G]) {
		for i := range child.Genome {
			if rng.Float64() < mutationRate {
				child.Genome[i] = gene()
			}
		}
	}
}

// GenerationLimit finishes once the generation counter reaches n.
func GenerationLimit(n int) evo.FinishFunc {
	return func(c evo.ProblemContext) bool {
		return c.Generation >= n
	}
}
