// Package blobstore stores the immutable blobs linsearch produces and
// consumes: encoded datasets and benchmark reports.
//
// Built-in implementations:
//
//   - LocalStore: a local directory, read through mmap
//   - MemoryStore: process memory, for tests and throwaway runs
//   - CachingStore: block cache in front of any other store
//   - s3.Store: Amazon S3 with ranged reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// Custom backends implement BlobStore:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// ReadAll fetches a whole blob, skipping the copy through ReadAt when the
// blob is Mappable.
package blobstore
