package dataset

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/hupe1980/linsearch/blobstore"
)

// Prefix is the blob prefix datasets are stored under.
const Prefix = "datasets/"

const ext = ".lsds"

// BlobName returns the blob name a dataset is stored under.
func BlobName(name string) string {
	return path.Join(Prefix, name+ext)
}

// Save encodes ds and writes it to store.
func Save(ctx context.Context, store blobstore.BlobStore, ds *Dataset, c Compression) error {
	var buf bytes.Buffer
	if err := Encode(&buf, ds, c); err != nil {
		return err
	}
	if err := store.Put(ctx, BlobName(ds.Name), buf.Bytes()); err != nil {
		return fmt.Errorf("dataset: save %q: %w", ds.Name, err)
	}
	return nil
}

// Load reads and decodes the named dataset from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...DecodeOption) (*Dataset, error) {
	data, err := blobstore.ReadAll(ctx, store, BlobName(name))
	if err != nil {
		return nil, fmt.Errorf("dataset: load %q: %w", name, err)
	}
	ds, err := Decode(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("dataset: load %q: %w", name, err)
	}
	return ds, nil
}

// List returns the names of all datasets in store, sorted.
func List(ctx context.Context, store blobstore.BlobStore) ([]string, error) {
	blobs, err := store.List(ctx, Prefix)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, b := range blobs {
		if !strings.HasSuffix(b, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(b, Prefix), ext))
	}
	sort.Strings(names)
	return names, nil
}
