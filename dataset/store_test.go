package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/linsearch/blobstore"
	"github.com/hupe1980/linsearch/testutil"
)

func TestStore_SaveLoadList(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(11)

	stores := map[string]blobstore.BlobStore{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			a := Generate(rng, 512, Middle)
			b := Generate(rng, 128, Absent)

			require.NoError(t, Save(ctx, store, a, CompressionZSTD))
			require.NoError(t, Save(ctx, store, b, CompressionNone))
			require.NoError(t, store.Put(ctx, "datasets/README", []byte("ignored")))

			names, err := List(ctx, store)
			require.NoError(t, err)
			assert.Equal(t, []string{"absent-128", "middle-512"}, names)

			got, err := Load(ctx, store, a.Name)
			require.NoError(t, err)
			assert.Equal(t, a.Values, got.Values)
			assert.Equal(t, a.Expected, got.Expected)

			_, err = Load(ctx, store, "missing")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}
}

func TestBlobName(t *testing.T) {
	assert.Equal(t, "datasets/first-10.lsds", BlobName("first-10"))
}
