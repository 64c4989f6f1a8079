// Package s3 implements blobstore.BlobStore on Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("linsearch/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// Reads are ranged GETs. Writes below one part size use a single PutObject
// carrying a CRC32C checksum; larger blobs go through the multipart
// uploader. PutIfAbsent uses a conditional write so concurrent publishers
// cannot overwrite each other's reports.
package s3
