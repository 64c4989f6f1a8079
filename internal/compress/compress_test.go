package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("linsearch-"), 4096)

	for _, typ := range []Type{None, LZ4, ZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			out, applied, err := Compress(compressible, typ)
			require.NoError(t, err)
			assert.Equal(t, typ, applied)
			if typ != None {
				assert.Less(t, len(out), len(compressible))
			}

			back, err := Decompress(out, applied, len(compressible))
			require.NoError(t, err)
			assert.Equal(t, compressible, back)
		})
	}
}

func TestCompress_IncompressibleFallsBackToNone(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	noise := make([]byte, 8192)
	_, _ = r.Read(noise)

	for _, typ := range []Type{LZ4, ZSTD} {
		out, applied, err := Compress(noise, typ)
		require.NoError(t, err)
		assert.Equal(t, None, applied, typ.String())
		assert.Equal(t, noise, out)
	}
}

func TestDecompress_SizeMismatch(t *testing.T) {
	data := bytes.Repeat([]byte{7}, 1024)

	_, err := Decompress(data, None, 10)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	out, applied, err := Compress(data, ZSTD)
	require.NoError(t, err)
	require.Equal(t, ZSTD, applied)
	_, err = Decompress(out, ZSTD, 1000)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{None, LZ4, ZSTD} {
		parsed, ok := ParseType(typ.String())
		assert.True(t, ok)
		assert.Equal(t, typ, parsed)
	}
	_, ok := ParseType("brotli")
	assert.False(t, ok)

	_, _, err := Compress([]byte{1}, Type(9))
	assert.Error(t, err)
}
