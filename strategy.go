package linsearch

import "strings"

// Strategy selects the scan used by a Locator.
type Strategy uint8

const (
	// StrategyLibrary delegates to slices.Index.
	StrategyLibrary Strategy = iota
	// StrategyBounded is a hand-written loop with a bound check per element.
	StrategyBounded
	// StrategyUnchecked omits the bound check and requires the target to be present.
	StrategyUnchecked
	// StrategyUnrolled compares a fixed number of elements per loop iteration.
	StrategyUnrolled
	// StrategyWide compares a SIMD register's worth of elements at once.
	StrategyWide
)

// Strategies returns every strategy in order of increasing expected throughput.
func Strategies() []Strategy {
	return []Strategy{StrategyLibrary, StrategyBounded, StrategyUnchecked, StrategyUnrolled, StrategyWide}
}

// String returns the string representation of a Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyLibrary:
		return "library"
	case StrategyBounded:
		return "bounded"
	case StrategyUnchecked:
		return "unchecked"
	case StrategyUnrolled:
		return "unrolled"
	case StrategyWide:
		return "wide"
	default:
		return "unknown"
	}
}

// Total reports whether the strategy is defined for every input, returning
// NotFound when the target is absent.
func (s Strategy) Total() bool {
	return s != StrategyUnchecked
}

// ParseStrategy parses a string into a Strategy value.
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "library":
		return StrategyLibrary, true
	case "bounded":
		return StrategyBounded, true
	case "unchecked":
		return StrategyUnchecked, true
	case "unrolled":
		return StrategyUnrolled, true
	case "wide", "simd":
		return StrategyWide, true
	default:
		return StrategyLibrary, false
	}
}
