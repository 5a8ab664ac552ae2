package evo

// Observer receives one GenerationEvent per generation boundary, synchronously
// on the goroutine running Evolve.
type Observer[G any] interface {
	ObserveGeneration(event GenerationEvent[G])
}

type ObserverFunc[G any] func(event GenerationEvent[G])

func (f ObserverFunc[G]) ObserveGeneration(event GenerationEvent[G]) {
	f(event)
}

// MultiObserver fans an event out to each observer in order. Nil entries are
// skipped.
type MultiObserver[G any] []Observer[G]

func (m MultiObserver[G]) ObserveGeneration(event GenerationEvent[G]) {
	for _, observer := range m {
		if observer != nil {
			observer.ObserveGeneration(event)
		}
	}
}
