// Package minio implements blobstore.BlobStore on MinIO or any other
// S3-compatible server reachable through minio-go.
//
//	store, err := minio.New(ctx, minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "linsearch",
//	})
//
// Reads are ranged GETs; New creates the bucket on first use.
package minio
