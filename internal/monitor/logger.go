// Package monitor holds generation observers used by the run client: a
// throttled slog logger, prometheus metrics and an in-memory recorder.
package monitor

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"genevo/internal/evo"
)

const DefaultLogInterval = time.Second

// Logger writes one structured line per allowed generation. Generation 0 is
// always logged; afterwards at most one line per interval. Fitness fields
// describe scored_generation, the population the scores were computed for.
type Logger[G any] struct {
	logger  *slog.Logger
	limiter *rate.Limiter
}

func NewLogger[G any](logger *slog.Logger, interval time.Duration) *Logger[G] {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Logger[G]{logger: logger, limiter: rate.NewLimiter(limit, 1)}
}

func (l *Logger[G]) ObserveGeneration(event evo.GenerationEvent[G]) {
	if event.Context.Generation != 0 && !l.limiter.Allow() {
		return
	}
	s, err := evo.Stats(event.Population, event.PopulationFitness)
	if err != nil {
		l.logger.Warn("generation stats unavailable", "generation", event.Context.Generation, "error", err)
		return
	}
	l.logger.Info("generation",
		"generation", event.Context.Generation,
		"scored_generation", scoredGeneration(event),
		"population", len(event.Population),
		"best_fitness", event.PopulationFitness[s.FittestIndex],
		"mean_fitness", s.AvgFitness,
	)
}
