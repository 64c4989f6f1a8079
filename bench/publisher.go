package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/hupe1980/linsearch"
	"github.com/hupe1980/linsearch/blobstore"
	"github.com/hupe1980/linsearch/codec"
	"github.com/hupe1980/linsearch/internal/resource"
)

// ReportPrefix is the blob prefix reports are published under.
const ReportPrefix = "reports/"

// ReportBlobName returns the blob name for run id.
func ReportBlobName(id string) string {
	return path.Join(ReportPrefix, id+".json")
}

// conditionalPutter is implemented by stores that can refuse to overwrite.
type conditionalPutter interface {
	PutIfAbsent(ctx context.Context, name string, data []byte) error
}

// Publisher writes reports to a BlobStore and, optionally, a Ledger.
type Publisher struct {
	store  blobstore.BlobStore
	codec  codec.Codec
	rc     *resource.Controller
	ledger Ledger
	logger *linsearch.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithCodec overrides codec.Default.
func WithCodec(c codec.Codec) PublisherOption {
	return func(p *Publisher) { p.codec = c }
}

// WithRateLimit caps upload bandwidth in bytes per second.
func WithRateLimit(bytesPerSec int64) PublisherOption {
	return func(p *Publisher) {
		p.rc = resource.NewController(resource.Config{IOLimitBytesPerSec: bytesPerSec})
	}
}

// WithLedger records every published report in l.
func WithLedger(l Ledger) PublisherOption {
	return func(p *Publisher) { p.ledger = l }
}

// WithPublishLogger sets the logger. The default discards output.
func WithPublishLogger(l *linsearch.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = l }
}

// NewPublisher creates a Publisher writing to store.
func NewPublisher(store blobstore.BlobStore, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:  store,
		codec:  codec.Default,
		logger: linsearch.NoopLogger(),
	}
	for _, fn := range opts {
		fn(p)
	}
	return p
}

// Publish encodes r, uploads it and records it in the ledger.
// It returns the blob name the report was written to.
//
// The upload and the ledger entry are two writes, not one transaction: if
// Record fails the report stays published. Calling Publish again with the
// same report is safe, because a byte-identical blob already in place
// counts as uploaded and only the ledger write is repeated.
func (p *Publisher) Publish(ctx context.Context, r *Report) (string, error) {
	name := ReportBlobName(r.ID)

	data, err := codec.Pretty(p.codec, r)
	if err != nil {
		return "", fmt.Errorf("bench: encode report %s: %w", r.ID, err)
	}

	if err := p.rc.AcquireIO(ctx, len(data)); err != nil {
		return "", err
	}

	if cp, ok := p.store.(conditionalPutter); ok {
		if err = cp.PutIfAbsent(ctx, name, data); err != nil && p.alreadyPublished(ctx, name, data) {
			err = nil
		}
	} else {
		err = p.store.Put(ctx, name, data)
	}
	p.logger.LogPublish(ctx, name, len(data), err)
	if err != nil {
		return "", fmt.Errorf("bench: publish %s: %w", name, err)
	}

	if p.ledger != nil {
		if err := p.ledger.Record(ctx, EntryFor(r, name)); err != nil {
			return name, fmt.Errorf("bench: record %s: %w", r.ID, err)
		}
	}
	return name, nil
}

// alreadyPublished reports whether name already holds exactly data.
func (p *Publisher) alreadyPublished(ctx context.Context, name string, data []byte) bool {
	existing, err := blobstore.ReadAll(ctx, p.store, name)
	return err == nil && bytes.Equal(existing, data)
}

// LoadReport reads a published report. Any built-in codec can decode it.
func LoadReport(ctx context.Context, store blobstore.BlobStore, id string) (*Report, error) {
	data, err := blobstore.ReadAll(ctx, store, ReportBlobName(id))
	if err != nil {
		return nil, err
	}
	var r Report
	if err := codec.Default.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("bench: decode report %s: %w", id, err)
	}
	return &r, nil
}

// ListReports returns the IDs of all published reports, oldest first.
func ListReports(ctx context.Context, store blobstore.BlobStore) ([]string, error) {
	names, err := store.List(ctx, ReportPrefix)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, n := range names {
		if id, ok := strings.CutSuffix(strings.TrimPrefix(n, ReportPrefix), ".json"); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
