package cache

import "context"

// Key identifies one fixed-size block of a named blob.
type Key struct {
	Path  string
	Block uint64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	Get(ctx context.Context, key Key) (b []byte, ok bool)
	// Set may retain b; the caller must not modify it afterwards.
	Set(ctx context.Context, key Key, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key Key) bool)
	Stats() (hits, misses int64)
}
