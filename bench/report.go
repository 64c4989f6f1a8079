package bench

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/hupe1980/linsearch"
)

// Result is the measurement of one strategy on one dataset.
type Result struct {
	Dataset  string `json:"dataset"`
	Strategy string `json:"strategy"`
	Length   int    `json:"length"`
	Expected int    `json:"expected"`
	Got      int    `json:"got"`

	Iterations    int     `json:"iterations,omitempty"`
	NsPerOp       float64 `json:"ns_per_op,omitempty"`
	ElementsPerNs float64 `json:"elements_per_ns,omitempty"`

	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`

	// Err is the mismatch message, empty when the strategy returned Expected.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the strategy returned a wrong index.
func (r Result) Failed() bool {
	return r.Err != ""
}

// Report is the outcome of a benchmark run.
type Report struct {
	ID           string        `json:"id"`
	Host         string        `json:"host"`
	CreatedAt    time.Time     `json:"created_at"`
	Elapsed      time.Duration `json:"elapsed"`
	GOOS         string        `json:"goos"`
	GOARCH       string        `json:"goarch"`
	ISA          string        `json:"isa"`
	BlockWidth   int           `json:"block_width"`
	UnrollFactor int           `json:"unroll_factor"`
	Results      []Result      `json:"results"`
	Failures     int           `json:"failures"`
}

func newReport(unroll int) *Report {
	now := time.Now().UTC()
	return &Report{
		ID:           NewRunID(now),
		Host:         Hostname(),
		CreatedAt:    now,
		GOOS:         runtime.GOOS,
		GOARCH:       runtime.GOARCH,
		ISA:          linsearch.ActiveISA(),
		BlockWidth:   linsearch.BlockWidth(),
		UnrollFactor: unroll,
	}
}

// NewRunID returns a sortable identifier: the UTC timestamp plus a random suffix.
func NewRunID(t time.Time) string {
	return fmt.Sprintf("%s-%08x", t.UTC().Format("20060102T150405Z"), rand.Uint32())
}

// Hostname returns the machine name, or "unknown".
func Hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
}

// Fastest returns the non-skipped, non-failed result with the lowest ns/op
// for dataset, and false if there is none.
func (r *Report) Fastest(dataset string) (Result, bool) {
	var best Result
	found := false
	for _, res := range r.Results {
		if res.Dataset != dataset || res.Skipped || res.Failed() || res.Iterations == 0 {
			continue
		}
		if !found || res.NsPerOp < best.NsPerOp {
			best, found = res, true
		}
	}
	return best, found
}
