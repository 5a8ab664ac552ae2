package strategy

import (
	"math/rand"

	"genevo/internal/evo"
)

const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz "

// RuneGene draws uniformly from alphabet (DefaultAlphabet when empty).
func RuneGene(rng *rand.Rand, alphabet string) evo.GeneFunc[rune] {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	runes := []rune(alphabet)
	return func() rune {
		return runes[rng.Intn(len(runes))]
	}
}

// TargetMatch scores the fraction of positions that equal target.
func TargetMatch[G comparable](target []G) evo.FitnessFunc[G] {
	return func(o *evo.Organism[G]) float64 {
		if len(o.Genome) == 0 {
			return 0
		}
		score := 0
		for i, g := range o.Genome {
			if i < len(target) && g == target[i] {
				score++
			}
		}
		return float64(score) / float64(len(o.Genome))
	}
}

// GenomeString renders a rune genome.
func GenomeString(genome evo.Genome[rune]) string {
	return string(genome)
}
