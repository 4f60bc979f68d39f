// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("snapshots/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = snapshot.Save(ctx, store, "mame.dats", st)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large snapshots
//   - CRC32C integrity checks on small puts
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
