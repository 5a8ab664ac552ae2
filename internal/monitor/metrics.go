package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"genevo/internal/evo"
)

const metricsNamespace = "genevo"

// Metrics publishes run progress. BestFitness and MeanFitness belong to
// ScoredGeneration, which trails Generation by one after generation 0.
type Metrics[G any] struct {
	Generation       prometheus.Gauge
	ScoredGeneration prometheus.Gauge
	BestFitness      prometheus.Gauge
	MeanFitness      prometheus.Gauge
	GenerationsTotal prometheus.Counter
}

// NewMetrics registers the run gauges on reg.
func NewMetrics[G any](reg prometheus.Registerer) (*Metrics[G], error) {
	m := &Metrics[G]{
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "generation",
			Help:      "Index of the most recently announced generation",
		}),
		ScoredGeneration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "scored_generation",
			Help:      "Generation whose population the fitness gauges describe",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "best_fitness",
			Help:      "Best fitness of the scored generation",
		}),
		MeanFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "mean_fitness",
			Help:      "Mean fitness of the scored generation",
		}),
		GenerationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Total number of generation events observed",
		}),
	}
	for _, c := range []prometheus.Collector{m.Generation, m.ScoredGeneration, m.BestFitness, m.MeanFitness, m.GenerationsTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics[G]) ObserveGeneration(event evo.GenerationEvent[G]) {
	m.GenerationsTotal.Inc()
	m.Generation.Set(float64(event.Context.Generation))
	s, err := evo.Stats(event.Population, event.PopulationFitness)
	if err != nil {
		return
	}
	m.ScoredGeneration.Set(float64(scoredGeneration(event)))
	m.BestFitness.Set(event.PopulationFitness[s.FittestIndex])
	m.MeanFitness.Set(s.AvgFitness)
}
