// Package minio stores snapshots in MinIO and other S3-compatible services
// (Ceph, SeaweedFS, Garage) through the MinIO client.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "dats",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	    minio.WithPrefix("snapshots/"),
//	)
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
