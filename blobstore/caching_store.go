package blobstore

import (
	"context"
	"errors"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/linsearch/internal/cache"
)

// DefaultBlockSize is the cache granularity used when none is given.
const DefaultBlockSize = 64 << 10

// CachingStore wraps a BlobStore and caches fixed-size blocks of what it reads.
// It pays off for remote stores where benchmarks reload the same datasets.
type CachingStore struct {
	inner     BlobStore
	cache     cache.BlockCache
	blockSize int64

	// gen counts completed writes per name. A fetch only caches what it
	// read if no write finished in the meantime.
	mu  sync.Mutex
	gen map[string]uint64
}

// NewCachingStore creates a CachingStore. blockSize <= 0 selects DefaultBlockSize.
func NewCachingStore(inner BlobStore, c cache.BlockCache, blockSize int64) *CachingStore {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &CachingStore{inner: inner, cache: c, blockSize: blockSize, gen: map[string]uint64{}}
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachingBlob{inner: b, store: s, name: name}, nil
}

// Put writes through and then drops the blob's cached blocks.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	defer s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	defer s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// invalidate runs after the inner write, even a failed one, since the
// write may have landed partially.
func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[name]++
	s.cache.Invalidate(func(k cache.Key) bool { return k.Path == name })
}

func (s *CachingStore) generation(name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen[name]
}

// fill caches blocks read at generation gen, unless a write has finished
// since.
func (s *CachingStore) fill(ctx context.Context, name string, gen uint64, first int64, blocks [][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen[name] != gen {
		return
	}
	for i, blk := range blocks {
		s.cache.Set(ctx, cache.Key{Path: name, Block: uint64(first + int64(i))}, blk)
	}
}

type cachingBlob struct {
	inner Blob
	store *CachingStore
	name  string
}

func (b *cachingBlob) Close() error { return b.inner.Close() }

func (b *cachingBlob) Size() int64 { return b.inner.Size() }

func (b *cachingBlob) key(blk int64) cache.Key {
	return cache.Key{Path: b.name, Block: uint64(blk)}
}

func (b *cachingBlob) blockSize() int64 { return b.store.blockSize }

func (b *cachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	size := b.Size()
	if off < 0 || off >= size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), size)
	first := off / b.blockSize()
	last := (end - 1) / b.blockSize()

	blocks, err := b.fetch(ctx, first, last)
	if err != nil {
		return 0, err
	}

	n := 0
	for i, data := range blocks {
		blkStart := (first + int64(i)) * b.blockSize()
		from := max(off, blkStart) - blkStart
		if from >= int64(len(data)) {
			break
		}
		n += copy(p[n:], data[from:])
	}

	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// fetch returns blocks first..last, reading contiguous runs of misses from
// the inner blob in parallel and populating the cache.
func (b *cachingBlob) fetch(ctx context.Context, first, last int64) ([][]byte, error) {
	blocks := make([][]byte, last-first+1)
	gen := b.store.generation(b.name)

	type run struct{ start, count int64 }
	var misses []run
	for blk := first; blk <= last; blk++ {
		if data, ok := b.store.cache.Get(ctx, b.key(blk)); ok {
			blocks[blk-first] = data
			continue
		}
		if n := len(misses); n > 0 && misses[n-1].start+misses[n-1].count == blk {
			misses[n-1].count++
		} else {
			misses = append(misses, run{start: blk, count: 1})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	size := b.Size()
	for _, r := range misses {
		g.Go(func() error {
			start := r.start * b.blockSize()
			length := min(r.count*b.blockSize(), size-start)

			buf := make([]byte, length)
			n, err := b.inner.ReadAt(gctx, buf, start)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			buf = buf[:n]

			read := make([][]byte, 0, r.count)
			for i := int64(0); i < r.count; i++ {
				lo := i * b.blockSize()
				if lo >= int64(len(buf)) {
					break
				}
				hi := min(lo+b.blockSize(), int64(len(buf)))
				// Copy so a cached block does not pin the whole run.
				blk := append([]byte(nil), buf[lo:hi]...)
				blocks[r.start+i-first] = blk
				read = append(read, blk)
			}
			b.store.fill(gctx, b.name, gen, r.start, read)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}
