package bench

import (
	"context"
	"time"
)

// Entry is one run as recorded in a Ledger.
type Entry struct {
	Host      string    `json:"host"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	ISA       string    `json:"isa"`
	Results   int       `json:"results"`
	Failures  int       `json:"failures"`
	// Blob is the store name the full report was published under.
	Blob string `json:"blob"`
}

// EntryFor summarises r as published under blob.
func EntryFor(r *Report, blob string) Entry {
	return Entry{
		Host:      r.Host,
		RunID:     r.ID,
		CreatedAt: r.CreatedAt,
		ISA:       r.ISA,
		Results:   len(r.Results),
		Failures:  r.Failures,
		Blob:      blob,
	}
}

// Ledger is an append-only index of published runs, keyed by host and run ID.
type Ledger interface {
	// Record adds e. It returns ErrDuplicateRun if the run is already recorded.
	Record(ctx context.Context, e Entry) error
	// Latest returns the most recent run for host, or ErrNoRuns.
	Latest(ctx context.Context, host string) (Entry, error)
}
