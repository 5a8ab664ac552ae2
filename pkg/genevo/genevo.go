// Package genevo is the public surface of the evolution engine. It re-exports
// the generic core from internal/evo together with the reference strategies,
// and offers a store-backed Client for the target-string experiment.
package genevo

import (
	"context"
	"math/rand"

	"genevo/internal/evo"
	"genevo/internal/model"
	"genevo/internal/strategy"
)

type (
	Genome[G any]          = evo.Genome[G]
	Organism[G any]        = evo.Organism[G]
	Population[G any]      = evo.Population[G]
	PopulationFitness      = evo.PopulationFitness
	ProblemContext         = evo.ProblemContext
	GenerationEvent[G any] = evo.GenerationEvent[G]
	EvolutionStats[G any]  = evo.EvolutionStats[G]
	EvolveOptions[G any]   = evo.Options[G]
	Result[G any]          = evo.Result[G]
	FitnessOptions[G any]  = evo.FitnessOptions[G]
	MateOptions[G any]     = evo.MateOptions[G]
	Observer[G any]        = evo.Observer[G]
	ObserverFunc[G any]    = evo.ObserverFunc[G]
	MultiObserver[G any]   = evo.MultiObserver[G]
	OrganismFunc[G any]    = evo.OrganismFunc[G]
	GeneFunc[G any]        = evo.GeneFunc[G]
	CrossoverFunc[G any]   = evo.CrossoverFunc[G]
	MutationFunc[G any]    = evo.MutationFunc[G]
	FitnessFunc[G any]     = evo.FitnessFunc[G]
	MatingPoolFunc[G any]  = evo.MatingPoolFunc[G]
	FinishFunc             = evo.FinishFunc
	Phase                  = evo.Phase
	PhaseError             = evo.PhaseError
	RunRecord              = model.RunRecord
	GenerationRecord       = model.GenerationRecord
)

const (
	DefaultPopulationSize = evo.DefaultPopulationSize
	DefaultMutationRate   = evo.DefaultMutationRate
	DefaultAlphabet       = strategy.DefaultAlphabet
)

var (
	ErrInvalidConfig   = evo.ErrInvalidConfig
	ErrEmptyPopulation = evo.ErrEmptyPopulation
	ErrFitnessMismatch = evo.ErrFitnessMismatch
	ErrEmptyMatingPool = evo.ErrEmptyMatingPool
	ErrGenomeLength    = evo.ErrGenomeLength
	ErrNilOrganism     = evo.ErrNilOrganism
	ErrGenerationLimit = evo.ErrGenerationLimit
)

func Evolve[G any](ctx context.Context, opts EvolveOptions[G]) (Result[G], error) {
	return evo.Evolve(ctx, opts)
}

func CreatePopulation[G any](n int, organism OrganismFunc[G]) Population[G] {
	return evo.CreatePopulation(n, organism)
}

func CreateGenome[G any](length int, gene GeneFunc[G]) Genome[G] {
	return evo.CreateGenome(length, gene)
}

func GenomeOrganism[G any](length int, gene GeneFunc[G]) OrganismFunc[G] {
	return evo.GenomeOrganism(length, gene)
}

func CalculatePopulationFitness[G any](ctx context.Context, population Population[G], opts FitnessOptions[G]) (PopulationFitness, error) {
	return evo.CalculatePopulationFitness(ctx, population, opts)
}

func MaxFitness(populationFitness PopulationFitness) float64 {
	return evo.MaxFitness(populationFitness)
}

func CreateMatingPool[G any](population Population[G], populationFitness PopulationFitness, matingPool MatingPoolFunc[G]) (Population[G], error) {
	return evo.CreateMatingPool(population, populationFitness, matingPool)
}

func Mate[G any](rng *rand.Rand, population, matingPool Population[G], opts MateOptions[G]) (Population[G], error) {
	return evo.Mate(rng, population, matingPool, opts)
}

func Stats[G any](population Population[G], populationFitness PopulationFitness) (EvolutionStats[G], error) {
	return evo.Stats(population, populationFitness)
}

func Rate(v float64) *float64 {
	return evo.Rate(v)
}

func PhaseOf(err error) (Phase, bool) {
	return evo.PhaseOf(err)
}

func FitnessProportionate[G any](scale int) MatingPoolFunc[G] {
	return strategy.FitnessProportionate[G](scale)
}

func Tournament[G any](rng *rand.Rand, size, rounds int) MatingPoolFunc[G] {
	return strategy.Tournament[G](rng, size, rounds)
}

func MidpointCrossover[G any](a, b *Organism[G]) *Organism[G] {
	return strategy.MidpointCrossover(a, b)
}

func PointMutation[G any](rng *rand.Rand) MutationFunc[G] {
	return strategy.PointMutation[G](rng)
}

func GenerationLimit(n int) FinishFunc {
	return strategy.GenerationLimit(n)
}

func RuneGene(rng *rand.Rand, alphabet string) GeneFunc[rune] {
	return strategy.RuneGene(rng, alphabet)
}

func TargetMatch[G comparable](target []G) FitnessFunc[G] {
	return strategy.TargetMatch(target)
}
