package evo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type FitnessOptions[G any] struct {
	Fitness FitnessFunc[G]
	// Workers > 1 scores organisms concurrently. Scores stay index-aligned
	// and are all available when the call returns.
	Workers int
}

// CalculatePopulationFitness scores every organism once, in population order.
func CalculatePopulationFitness[G any](ctx context.Context, population Population[G], opts FitnessOptions[G]) (PopulationFitness, error) {
	if opts.Fitness == nil {
		return nil, phaseErr(PhaseFitness, fmt.Errorf("%w: fitness function is required", ErrInvalidConfig))
	}
	if len(population) == 0 {
		return nil, phaseErr(PhaseFitness, ErrEmptyPopulation)
	}

	populationFitness := make(PopulationFitness, len(population))
	if opts.Workers <= 1 || len(population) == 1 {
		for i, o := range population {
			populationFitness[i] = opts.Fitness(o)
		}
		return populationFitness, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range population {
		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("fitness of organism %d panicked: %v", i, r)
				}
			}()
			populationFitness[i] = opts.Fitness(population[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, phaseErr(PhaseFitness, err)
	}
	return populationFitness, nil
}
