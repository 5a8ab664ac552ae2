package monitor

import (
	"sync"

	"genevo/internal/evo"
	"genevo/internal/model"
	"genevo/internal/stats"
)

// Recorder keeps one summary record per generation, each built from a
// population and the fitness vector computed for that same population.
//
// An event for generation g > 0 carries the scores of generation g-1, so the
// recorder holds on to the previous population and records it under g-1 once
// those scores arrive. Generation 0 is recorded from its own event and the
// repeated generation 0 scores on event 1 are skipped. The last population is
// never scored inside the loop; pass its aligned fitness to Complete.
type Recorder[G any] struct {
	render stats.RenderFunc[G]

	mu       sync.Mutex
	previous evo.Population[G]
	records  []model.GenerationRecord
	err      error
}

func NewRecorder[G any](render stats.RenderFunc[G]) *Recorder[G] {
	return &Recorder[G]{render: render}
}

func (r *Recorder[G]) ObserveGeneration(event evo.GenerationEvent[G]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	generation := event.Context.Generation
	switch {
	case generation == 0:
		r.record(event.Population, event.PopulationFitness, 0)
	case generation >= 2 && r.previous != nil:
		r.record(r.previous, event.PopulationFitness, generation-1)
	}
	r.previous = event.Population
}

// Complete records the final population with fitness computed for it, such as
// the vector from evo.Result.Aligned. Generations already recorded are ignored.
func (r *Recorder[G]) Complete(population evo.Population[G], populationFitness evo.PopulationFitness, generation int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.records); n > 0 && r.records[n-1].Generation >= generation {
		return
	}
	r.record(population, populationFitness, generation)
}

func (r *Recorder[G]) record(population evo.Population[G], populationFitness evo.PopulationFitness, generation int) {
	record, err := stats.Summarize(population, populationFitness, generation, r.render)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.records = append(r.records, record)
}

func (r *Recorder[G]) Records() []model.GenerationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.GenerationRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Err returns the first summarization failure, if any.
func (r *Recorder[G]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
