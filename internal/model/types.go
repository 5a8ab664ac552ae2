package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord describes one finished evolution run.
type RunRecord struct {
	VersionedRecord
	ID              string  `json:"id"`
	CreatedAtUTC    string  `json:"created_at_utc"`
	Target          string  `json:"target"`
	Selection       string  `json:"selection"`
	PopulationSize  int     `json:"population_size"`
	GenomeLength    int     `json:"genome_length"`
	MutationRate    float64 `json:"mutation_rate"`
	Generations     int     `json:"generations"`
	Seed            int64   `json:"seed"`
	Workers         int     `json:"workers"`
	FinalGeneration int     `json:"final_generation"`
	BestFitness     float64 `json:"best_fitness"`
	AvgFitness      float64 `json:"avg_fitness"`
	BestGenome      string  `json:"best_genome"`
}

// GenerationRecord summarizes the population of Generation scored with its
// own fitness vector, so Fittest always carries BestFitness.
type GenerationRecord struct {
	Generation    int     `json:"generation"`
	BestFitness   float64 `json:"best_fitness"`
	MeanFitness   float64 `json:"mean_fitness"`
	MinFitness    float64 `json:"min_fitness"`
	StdDevFitness float64 `json:"stddev_fitness"`
	TotalFitness  float64 `json:"total_fitness"`
	FittestIndex  int     `json:"fittest_index"`
	Fittest       string  `json:"fittest,omitempty"`
}
