package engine

import (
	"errors"
	"fmt"
)

// ErrSignalUnavailable marks a scorer that had no usable input. It is distinct from a real zero score.
var ErrSignalUnavailable = errors.New("signal unavailable")

// OutcomeStatus classifies a scorer run.
type OutcomeStatus string

const (
	OutcomeScored      OutcomeStatus = "scored"
	OutcomeUnavailable OutcomeStatus = "unavailable"
	OutcomeFailed      OutcomeStatus = "failed"
)

const (
	ScorerPreference = "preference"
	ScorerHistory    = "history"
	ScorerSimilarity = "similarity"
)

// Outcome is the result of one scorer for one request. Scores is only meaningful
// when Status is OutcomeScored.
type Outcome struct {
	Scorer string
	Status OutcomeStatus
	Scores map[string]float64
	Err    error
}

// Contributes reports whether the aggregator should include this scorer.
func (o Outcome) Contributes() bool {
	return o.Status == OutcomeScored
}

func unavailable(scorer string, err error) Outcome {
	if err == nil {
		err = ErrSignalUnavailable
	}
	return Outcome{Scorer: scorer, Status: OutcomeUnavailable, Err: err}
}

// runScorer executes fn and converts errors and panics into an Outcome so one
// failing scorer never aborts the others.
func runScorer(scorer string, fn func() (map[string]float64, error)) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = Outcome{Scorer: scorer, Status: OutcomeFailed, Err: fmt.Errorf("scorer %s panicked: %v", scorer, rec)}
		}
	}()
	scores, err := fn()
	switch {
	case errors.Is(err, ErrSignalUnavailable):
		return unavailable(scorer, err)
	case err != nil:
		return Outcome{Scorer: scorer, Status: OutcomeFailed, Err: err}
	}
	if scores == nil {
		scores = map[string]float64{}
	}
	return Outcome{Scorer: scorer, Status: OutcomeScored, Scores: scores}
}
