package minio

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/hupe1980/datgo/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_Integration requires a running MinIO instance at
// MINIO_ENDPOINT (e.g. localhost:9000 with minioadmin credentials).
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("Skipping MinIO integration test: MINIO_ENDPOINT not set")
	}

	ctx := context.Background()
	store, err := New(endpoint, "datgo-test",
		WithCredentials("minioadmin", "minioadmin"),
		WithPrefix("test-prefix/"),
	)
	require.NoError(t, err)
	require.NoError(t, store.EnsureBucket(ctx))

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.dats", data))

	got, err := blobstore.ReadAll(ctx, store, "test.dats")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.dats")

	w, err := store.Create(ctx, "stream.dats")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed data"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "stream.dats")
	require.NoError(t, err)
	assert.Equal(t, int64(13), blob.Size())
	require.NoError(t, blob.Close())

	require.NoError(t, store.Delete(ctx, "test.dats"))
	require.NoError(t, store.Delete(ctx, "stream.dats"))

	_, err = store.Open(ctx, "test.dats")
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}

func TestKeyAndNotFound(t *testing.T) {
	s := NewStore(nil, "bucket", "root/")
	assert.Equal(t, "root/a/b.dats", s.key("a/b.dats"))
	assert.False(t, isNotFound(errors.New("boom")))
}
