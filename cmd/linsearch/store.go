package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hupe1980/linsearch/blobstore"
	"github.com/hupe1980/linsearch/blobstore/minio"
	"github.com/hupe1980/linsearch/blobstore/s3"
	"github.com/hupe1980/linsearch/internal/cache"
	"github.com/hupe1980/linsearch/internal/resource"
)

// stores holds the raw store for writes and a read path that may be cached.
type stores struct {
	raw  blobstore.BlobStore
	read blobstore.BlobStore
}

// openStore resolves a store URI:
//
//	file://dir
//	mem://
//	s3://bucket/prefix
//	minio://endpoint/bucket/prefix
//
// Remote reads go through a block cache of cacheBytes when it is positive.
func openStore(ctx context.Context, uri string, cacheBytes int64) (stores, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return stores{}, fmt.Errorf("store %q: %w", uri, err)
	}

	var raw blobstore.BlobStore
	remote := false
	switch u.Scheme {
	case "", "file":
		dir := u.Path
		if u.Host != "" {
			dir = u.Host + u.Path
		}
		if dir == "" {
			return stores{}, fmt.Errorf("store %q: missing directory", uri)
		}
		raw = blobstore.NewLocalStore(dir)
	case "mem":
		raw = blobstore.NewMemoryStore()
	case "s3":
		if u.Host == "" {
			return stores{}, fmt.Errorf("store %q: missing bucket", uri)
		}
		opts := []s3.Option{s3.WithPrefix(strings.Trim(u.Path, "/"))}
		if endpoint := os.Getenv("LINSEARCH_S3_ENDPOINT"); endpoint != "" {
			opts = append(opts, s3.WithEndpoint(endpoint), s3.WithPathStyle())
		}
		raw, err = s3.New(ctx, u.Host, opts...)
		remote = true
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" {
			return stores{}, fmt.Errorf("store %q: want minio://endpoint/bucket[/prefix]", uri)
		}
		raw, err = minio.New(ctx, minio.Config{
			Endpoint:  u.Host,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    bucket,
			Prefix:    prefix,
			Secure:    u.Query().Get("secure") == "true",
		})
		remote = true
	default:
		return stores{}, fmt.Errorf("store %q: unsupported scheme %q", uri, u.Scheme)
	}
	if err != nil {
		return stores{}, err
	}

	s := stores{raw: raw, read: raw}
	if remote && cacheBytes > 0 {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: cacheBytes})
		s.read = blobstore.NewCachingStore(raw, cache.NewLRU(cacheBytes, rc), blobstore.DefaultBlockSize)
	}
	return s, nil
}
