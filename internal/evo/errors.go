package evo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig   = errors.New("invalid evolution config")
	ErrEmptyPopulation = errors.New("population is empty")
	ErrFitnessMismatch = errors.New("population fitness length mismatch")
	ErrEmptyMatingPool = errors.New("mating pool is empty")
	ErrGenomeLength    = errors.New("genome length changed")
	ErrNilOrganism     = errors.New("organism is nil")
	ErrGenerationLimit = errors.New("generation limit reached")
)

// Phase names the engine step an error came from.
type Phase string

const (
	PhaseConfiguration Phase = "configuration"
	PhasePopulation    Phase = "population"
	PhaseFitness       Phase = "fitness"
	PhaseSelection     Phase = "selection"
	PhaseReproduction  Phase = "reproduction"
	PhaseStatistics    Phase = "statistics"
	PhaseTermination   Phase = "termination"
)

// PhaseError ties an engine failure to the phase that raised it.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func phaseErr(phase Phase, err error) error {
	if err == nil {
		return nil
	}
	var pe *PhaseError
	if errors.As(err, &pe) {
		return err
	}
	return &PhaseError{Phase: phase, Err: err}
}

// PhaseOf reports the phase attached to err, if any.
func PhaseOf(err error) (Phase, bool) {
	var pe *PhaseError
	if !errors.As(err, &pe) {
		return "", false
	}
	return pe.Phase, true
}
