package monitor

import "genevo/internal/evo"

// scoredGeneration is the generation whose population the event's fitness
// vector was computed for.
func scoredGeneration[G any](event evo.GenerationEvent[G]) int {
	if event.Context.Generation == 0 {
		return 0
	}
	return event.Context.Generation - 1
}
