package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	src := []byte("payload")
	require.NoError(t, store.Put(ctx, "reports/1.json", src))
	src[0] = 'X'

	got, err := ReadAll(ctx, store, "reports/1.json")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got), "Put must copy its input")

	b, err := store.Open(ctx, "reports/1.json")
	require.NoError(t, err)
	buf := make([]byte, 4)
	n, err := b.ReadAt(ctx, buf, 5)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, b.Close())

	require.NoError(t, store.Put(ctx, "datasets/x.lsds", nil))
	names, err := store.List(ctx, "reports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/1.json"}, names)

	require.NoError(t, store.Delete(ctx, "reports/1.json"))
	_, err = store.Open(ctx, "reports/1.json")
	assert.ErrorIs(t, err, ErrNotFound)
}
