package linsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrPresenceNotGuaranteed is returned when StrategyUnchecked is configured
	// without WithPresenceGuaranteed.
	ErrPresenceNotGuaranteed = errors.New("unchecked strategy requires the caller to guarantee target presence")

	// ErrSequenceTooLarge is returned when a sequence has more positions than a
	// 32-bit bitmap can address.
	ErrSequenceTooLarge = errors.New("sequence too large for position bitmap")

	// ErrInvalidShards is returned when ParallelLocate is given a non-positive shard count.
	ErrInvalidShards = errors.New("shards must be positive")
)

// ErrUnsupportedUnrollFactor indicates an unroll factor without a specialized kernel.
type ErrUnsupportedUnrollFactor struct {
	Factor int
}

func (e *ErrUnsupportedUnrollFactor) Error() string {
	return fmt.Sprintf("unsupported unroll factor: %d (supported: %v)", e.Factor, UnrollFactors())
}

// ErrInvalidStrategy indicates an unknown Strategy value.
type ErrInvalidStrategy struct {
	Strategy Strategy
}

func (e *ErrInvalidStrategy) Error() string {
	return fmt.Sprintf("invalid strategy: %d", e.Strategy)
}
