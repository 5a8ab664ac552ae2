package evo

import (
	"errors"
	"fmt"
	"math/rand"
)

type MateOptions[G any] struct {
	MutationRate float64
	Crossover    CrossoverFunc[G]
	Mutate       MutationFunc[G]
	Gene         GeneFunc[G]
	// GenomeLength, when positive, is enforced on every child.
	GenomeLength int
}

// Mate produces len(population) children. Each child is the crossover of two
// parents drawn uniformly with replacement from the mating pool, mutated in
// place afterwards. The current population only sizes the output.
func Mate[G any](rng *rand.Rand, population Population[G], matingPool Population[G], opts MateOptions[G]) (Population[G], error) {
	if rng == nil {
		return nil, phaseErr(PhaseReproduction, errors.New("random source is required"))
	}
	if opts.Crossover == nil || opts.Mutate == nil {
		return nil, phaseErr(PhaseReproduction, fmt.Errorf("%w: crossover and mutate functions are required", ErrInvalidConfig))
	}
	if len(matingPool) == 0 {
		return nil, phaseErr(PhaseReproduction, ErrEmptyMatingPool)
	}

	next := make(Population[G], 0, len(population))
	for i := 0; i < len(population); i++ {
		partnerA := matingPool[rng.Intn(len(matingPool))]
		partnerB := matingPool[rng.Intn(len(matingPool))]
		if partnerA == nil || partnerB == nil {
			return nil, phaseErr(PhaseReproduction, fmt.Errorf("%w: mating pool entry for child %d", ErrNilOrganism, i))
		}

		child := opts.Crossover(partnerA, partnerB)
		if child == nil {
			return nil, phaseErr(PhaseReproduction, fmt.Errorf("%w: crossover returned nil for child %d", ErrNilOrganism, i))
		}
		opts.Mutate(child, opts.MutationRate, opts.Gene)

		if opts.GenomeLength > 0 && len(child.Genome) != opts.GenomeLength {
			return nil, phaseErr(PhaseReproduction, fmt.Errorf("%w: child %d has %d genes, want %d", ErrGenomeLength, i, len(child.Genome), opts.GenomeLength))
		}
		next = append(next, child)
	}
	return next, nil
}
