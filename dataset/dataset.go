package dataset

import (
	"fmt"
	"strings"

	"github.com/hupe1980/linsearch"
	"github.com/hupe1980/linsearch/testutil"
)

// Placement describes where Generate puts the target.
type Placement uint8

const (
	// First puts the target at index 0.
	First Placement = iota
	// Middle puts the target at index n/2.
	Middle
	// Last puts the target at index n-1.
	Last
	// Random puts the target at a random index.
	Random
	// Absent leaves the target out.
	Absent
	// Duplicate puts the target at two random indices; the lower one is expected.
	Duplicate
)

// Placements returns every placement.
func Placements() []Placement {
	return []Placement{First, Middle, Last, Random, Absent, Duplicate}
}

// String returns the string representation of a Placement.
func (p Placement) String() string {
	switch p {
	case First:
		return "first"
	case Middle:
		return "middle"
	case Last:
		return "last"
	case Random:
		return "random"
	case Absent:
		return "absent"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// ParsePlacement parses a string into a Placement value.
func ParsePlacement(s string) (Placement, bool) {
	for _, p := range Placements() {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, true
		}
	}
	return First, false
}

// Dataset is a benchmark input with its expected answer.
type Dataset struct {
	Name     string
	Values   []int32
	Target   int32
	Expected int
}

// Present reports whether the target occurs in Values.
func (d *Dataset) Present() bool {
	return d.Expected != linsearch.NotFound
}

// TargetAt reports whether Values[i] holds Target. A precondition-exploiting
// strategy may only scan Values when TargetAt(Expected) holds, since only a
// confirmed occurrence bounds the scan.
func (d *Dataset) TargetAt(i int) bool {
	return i >= 0 && i < len(d.Values) && d.Values[i] == d.Target
}

// Verify checks Expected against the reference strategy.
func (d *Dataset) Verify() error {
	if got := linsearch.IndexLibrary(d.Values, d.Target); got != d.Expected {
		return fmt.Errorf("dataset %q: expected index %d, reference found %d", d.Name, d.Expected, got)
	}
	return nil
}

// Generate builds a dataset of n distinct values with the target placed per p.
// Values are a shuffled permutation of [0, n), so the target (chosen from
// outside that range) occurs exactly where it is placed.
func Generate(rng *testutil.RNG, n int, p Placement) *Dataset {
	values := rng.UniqueInt32s(n)
	target := int32(-1 - rng.Intn(1<<30))

	ds := &Dataset{
		Name:     fmt.Sprintf("%s-%d", p, n),
		Values:   values,
		Target:   target,
		Expected: linsearch.NotFound,
	}
	if n == 0 {
		return ds
	}

	switch p {
	case First:
		ds.place(0)
	case Middle:
		ds.place(n / 2)
	case Last:
		ds.place(n - 1)
	case Random:
		ds.place(rng.Intn(n))
	case Duplicate:
		a, b := rng.Intn(n), rng.Intn(n)
		ds.place(a)
		ds.place(b)
		ds.Expected = min(a, b)
	case Absent:
	}
	return ds
}

func (d *Dataset) place(i int) {
	d.Values[i] = d.Target
	d.Expected = i
}
