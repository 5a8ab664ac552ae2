package evo

// Genome is the fixed-length gene sequence owned by one organism. G is the
// caller's gene type; the engine only copies genes around.
type Genome[G any] []G

// Organism is the unit of selection and reproduction.
type Organism[G any] struct {
	Genome Genome[G] `json:"genome"`
}

// Clone returns an organism with its own copy of the genome.
func (o *Organism[G]) Clone() *Organism[G] {
	if o == nil {
		return nil
	}
	genome := make(Genome[G], len(o.Genome))
	copy(genome, o.Genome)
	return &Organism[G]{Genome: genome}
}

// Population is the ordered set of organisms alive in one generation.
// Indices are only meaningful within that generation.
type Population[G any] []*Organism[G]

// PopulationFitness holds one score per organism, index-aligned with the
// population it was computed for.
type PopulationFitness []float64

// ProblemContext is handed to the termination predicate and observers.
type ProblemContext struct {
	Generation int `json:"generation"`
}

// GenerationEvent is emitted once per generation boundary. PopulationFitness
// is the vector computed before the reproduction that produced Population,
// so after generation 0 it describes the previous population.
type GenerationEvent[G any] struct {
	Context           ProblemContext
	Population        Population[G]
	PopulationFitness PopulationFitness
}

// EvolutionStats is a read-only snapshot of one population. Fittest is
// borrowed from the population; clone it to keep it past the generation.
type EvolutionStats[G any] struct {
	Fittest      *Organism[G]
	FittestIndex int
	AvgFitness   float64
	TotalFitness float64
}

type (
	OrganismFunc[G any]   func(i int) *Organism[G]
	GeneFunc[G any]       func() G
	CrossoverFunc[G any]  func(a, b *Organism[G]) *Organism[G]
	MutationFunc[G any]   func(child *Organism[G], mutationRate float64, gene GeneFunc[G])
	FitnessFunc[G any]    func(o *Organism[G]) float64
	MatingPoolFunc[G any] func(population Population[G], populationFitness PopulationFitness, maxFitness float64) Population[G]
	FinishFunc            func(c ProblemContext) bool
)
