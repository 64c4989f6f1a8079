// Package boltdb records benchmark runs in a local bbolt database, for
// machines without access to a shared ledger.
package boltdb

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hupe1980/linsearch/bench"
	"github.com/hupe1980/linsearch/codec"
)

const bucketRuns = "runs"

// Ledger implements bench.Ledger. Runs live in one nested bucket per host,
// keyed by run ID, so the last key of a host bucket is its latest run.
type Ledger struct {
	db    *bolt.DB
	codec codec.Codec
}

var _ bench.Ledger = (*Ledger)(nil)

// Open opens or creates the database at path.
func Open(path string) (*Ledger, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltdb: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRuns))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltdb: initialize: %w", err)
	}
	return &Ledger{db: db, codec: codec.Default}, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores e. It returns bench.ErrDuplicateRun if the run already exists.
func (l *Ledger) Record(ctx context.Context, e bench.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := l.codec.Marshal(e)
	if err != nil {
		return err
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(bucketRuns)).CreateBucketIfNotExists([]byte(e.Host))
		if err != nil {
			return err
		}
		if b.Get([]byte(e.RunID)) != nil {
			return fmt.Errorf("boltdb: %s/%s: %w", e.Host, e.RunID, bench.ErrDuplicateRun)
		}
		return b.Put([]byte(e.RunID), value)
	})
}

// Latest returns the run with the greatest ID for host.
func (l *Ledger) Latest(ctx context.Context, host string) (bench.Entry, error) {
	if err := ctx.Err(); err != nil {
		return bench.Entry{}, err
	}
	var e bench.Entry
	err := l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRuns)).Bucket([]byte(host))
		if b == nil {
			return bench.ErrNoRuns
		}
		k, v := b.Cursor().Last()
		if k == nil {
			return bench.ErrNoRuns
		}
		return l.codec.Unmarshal(v, &e)
	})
	if err != nil {
		return bench.Entry{}, err
	}
	return e, nil
}

// Runs calls fn for each recorded run of host, oldest first, until fn returns false.
func (l *Ledger) Runs(host string, fn func(bench.Entry) bool) error {
	return l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRuns)).Bucket([]byte(host))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var e bench.Entry
			if err := l.codec.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("boltdb: decode %s: %w", k, err)
			}
			if !fn(e) {
				return nil
			}
		}
		return nil
	})
}
