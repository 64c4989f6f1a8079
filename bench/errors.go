package bench

import (
	"errors"
	"fmt"

	"github.com/hupe1980/linsearch"
)

var (
	// ErrDuplicateRun is returned by a Ledger when the run ID is already recorded.
	ErrDuplicateRun = errors.New("run already recorded")

	// ErrNoRuns is returned by Ledger.Latest when a host has no recorded runs.
	ErrNoRuns = errors.New("no runs recorded")
)

// MismatchError records a strategy returning the wrong index.
type MismatchError struct {
	Dataset  string
	Strategy linsearch.Strategy
	Want     int
	Got      int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s on %s: want index %d, got %d", e.Strategy, e.Dataset, e.Want, e.Got)
}
