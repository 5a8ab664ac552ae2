package evo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPopulationSize = 100
	DefaultMutationRate   = 0.05
)

// Options configures one Evolve run. GenomeLength and every strategy
// function except OnGeneratePopulation are required.
type Options[G any] struct {
	PopulationSize int
	GenomeLength   int
	Gene           GeneFunc[G]
	MatingPool     MatingPoolFunc[G]
	Crossover      CrossoverFunc[G]
	// MutationRate nil selects DefaultMutationRate; zero disables mutation.
	MutationRate *float64
	Mutate       MutationFunc[G]
	Fitness      FitnessFunc[G]
	ShouldFinish FinishFunc

	OnGeneratePopulation Observer[G]

	// Rand drives parent draws. Strategies that need randomness should share
	// it for reproducible runs. Nil seeds a source from the clock.
	Rand *rand.Rand
	// Workers > 1 enables concurrent fitness evaluation within a generation.
	Workers int
	// MaxGenerations > 0 aborts the run with ErrGenerationLimit once the
	// counter reaches it without ShouldFinish returning true.
	MaxGenerations int
}

// Rate returns a pointer for Options.MutationRate.
func Rate(v float64) *float64 {
	return &v
}

// Result is the state at termination. PopulationFitness was computed at the
// start of the last loop iteration, before the reproduction that produced
// Population, so it belongs to the previous generation. Use Aligned for
// scores of the returned population.
type Result[G any] struct {
	Population        Population[G]
	PopulationFitness PopulationFitness
	Context           ProblemContext
}

// Aligned returns a copy of r whose fitness vector is recomputed for
// r.Population.
func (r Result[G]) Aligned(ctx context.Context, opts FitnessOptions[G]) (Result[G], error) {
	populationFitness, err := CalculatePopulationFitness(ctx, r.Population, opts)
	if err != nil {
		return Result[G]{}, err
	}
	r.PopulationFitness = populationFitness
	return r, nil
}

type config[G any] struct {
	PopulationSize int               `json:"populationSize" validate:"gt=0"`
	GenomeLength   int               `json:"genomeLength" validate:"gt=0"`
	Gene           GeneFunc[G]       `json:"gene" validate:"required"`
	MatingPool     MatingPoolFunc[G] `json:"matingPool" validate:"required"`
	Crossover      CrossoverFunc[G]  `json:"crossover" validate:"required"`
	MutationRate   float64           `json:"mutationRate" validate:"gte=0,lte=1"`
	Mutate         MutationFunc[G]   `json:"mutate" validate:"required"`
	Fitness        FitnessFunc[G]    `json:"fitness" validate:"required"`
	ShouldFinish   FinishFunc        `json:"shouldFinish" validate:"required"`
	Workers        int               `json:"workers" validate:"gte=0"`
	MaxGenerations int               `json:"maxGenerations" validate:"gte=0"`

	observer Observer[G]
	rng      *rand.Rand
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// resolve fills unset optional fields with defaults, then validates the
// merged configuration.
func resolve[G any](opts Options[G]) (config[G], error) {
	cfg := config[G]{
		PopulationSize: opts.PopulationSize,
		GenomeLength:   opts.GenomeLength,
		Gene:           opts.Gene,
		MatingPool:     opts.MatingPool,
		Crossover:      opts.Crossover,
		MutationRate:   DefaultMutationRate,
		Mutate:         opts.Mutate,
		Fitness:        opts.Fitness,
		ShouldFinish:   opts.ShouldFinish,
		Workers:        opts.Workers,
		MaxGenerations: opts.MaxGenerations,
		observer:       opts.OnGeneratePopulation,
		rng:            opts.Rand,
	}
	if cfg.PopulationSize == 0 {
		cfg.PopulationSize = DefaultPopulationSize
	}
	if opts.MutationRate != nil {
		cfg.MutationRate = *opts.MutationRate
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if err := validate.Struct(cfg); err != nil {
		return config[G]{}, phaseErr(PhaseConfiguration, describeValidation(err))
	}
	return cfg, nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fe.Field()+" is required")
		default:
			problems = append(problems, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// Evolve runs the generational loop until ShouldFinish reports true.
//
// Generation 0 is built and evaluated, then announced. Each loop iteration
// re-evaluates the current population, builds the mating pool, reproduces,
// increments the generation and announces the new population together with
// the fitness vector computed before reproduction. Fitness functions are
// therefore called twice for every population that goes through the loop.
func Evolve[G any](ctx context.Context, opts Options[G]) (Result[G], error) {
	cfg, err := resolve(opts)
	if err != nil {
		return Result[G]{}, err
	}

	generation := 0
	population := CreatePopulation(cfg.PopulationSize, GenomeOrganism(cfg.GenomeLength, cfg.Gene))
	if len(population) != cfg.PopulationSize {
		return Result[G]{}, phaseErr(PhasePopulation, fmt.Errorf("built %d organisms, want %d", len(population), cfg.PopulationSize))
	}

	fitnessOpts := FitnessOptions[G]{Fitness: cfg.Fitness, Workers: cfg.Workers}
	populationFitness, err := CalculatePopulationFitness(ctx, population, fitnessOpts)
	if err != nil {
		return Result[G]{}, err
	}
	cfg.notify(population, populationFitness, generation)

	for !cfg.ShouldFinish(ProblemContext{Generation: generation}) {
		if err := ctx.Err(); err != nil {
			return Result[G]{}, phaseErr(PhaseTermination, err)
		}
		if cfg.MaxGenerations > 0 && generation >= cfg.MaxGenerations {
			return Result[G]{}, phaseErr(PhaseTermination, fmt.Errorf("%w: %d", ErrGenerationLimit, cfg.MaxGenerations))
		}

		populationFitness, err = CalculatePopulationFitness(ctx, population, fitnessOpts)
		if err != nil {
			return Result[G]{}, err
		}

		matingPool, err := CreateMatingPool(population, populationFitness, cfg.MatingPool)
		if err != nil {
			return Result[G]{}, err
		}

		next, err := Mate(cfg.rng, population, matingPool, MateOptions[G]{
			MutationRate: cfg.MutationRate,
			Crossover:    cfg.Crossover,
			Mutate:       cfg.Mutate,
			Gene:         cfg.Gene,
			GenomeLength: cfg.GenomeLength,
		})
		if err != nil {
			return Result[G]{}, err
		}

		population = next
		generation++
		cfg.notify(population, populationFitness, generation)
	}

	return Result[G]{
		Population:        population,
		PopulationFitness: populationFitness,
		Context:           ProblemContext{Generation: generation},
	}, nil
}

func (c config[G]) notify(population Population[G], populationFitness PopulationFitness, generation int) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveGeneration(GenerationEvent[G]{
		Context:           ProblemContext{Generation: generation},
		Population:        population,
		PopulationFitness: populationFitness,
	})
}
