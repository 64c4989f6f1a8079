package dataset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/linsearch/internal/conv"
	"github.com/hupe1980/linsearch/internal/mem"
	"github.com/hupe1980/linsearch/testutil"
)

func encode(t *testing.T, ds *Dataset, c Compression) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, ds, c))
	return buf.Bytes()
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(7)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			ds := Generate(rng, 4096, Random)
			// Low-entropy values so the compressors have something to win.
			for i := range ds.Values {
				if i != ds.Expected {
					ds.Values[i] = int32(i % 16)
				}
			}

			got, err := Decode(bytes.NewReader(encode(t, ds, c)))
			require.NoError(t, err)

			assert.Equal(t, ds.Name, got.Name)
			assert.Equal(t, ds.Target, got.Target)
			assert.Equal(t, ds.Expected, got.Expected)
			assert.Equal(t, ds.Values, got.Values)
			assert.True(t, mem.IsAligned(unsafe.Pointer(&got.Values[0]), 64))
			assert.NoError(t, got.Verify())
		})
	}
}

func TestCodec_IncompressibleFallsBackToNone(t *testing.T) {
	rng := testutil.NewRNG(3)
	ds := Generate(rng, 256, First)
	for i := 1; i < len(ds.Values); i++ {
		ds.Values[i] = rng.Int32() & 0x7fffffff
	}
	data := encode(t, ds, CompressionZSTD)

	// Uniform 31-bit values do not shrink enough to keep ZSTD.
	assert.Equal(t, byte(CompressionNone), data[5])

	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, ds.Values, got.Values)
}

func TestCodec_Empty(t *testing.T) {
	ds := &Dataset{Name: "empty", Target: 9, Expected: -1}
	got, err := Decode(bytes.NewReader(encode(t, ds, CompressionLZ4)))
	require.NoError(t, err)
	assert.Empty(t, got.Values)
	assert.Equal(t, -1, got.Expected)
}

func TestCodec_Errors(t *testing.T) {
	ds := Generate(testutil.NewRNG(5), 64, Last)
	valid := encode(t, ds, CompressionNone)

	mutate := func(fn func(b []byte)) []byte {
		b := bytes.Clone(valid)
		fn(b)
		return b
	}

	t.Run("BadMagic", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(mutate(func(b []byte) { b[0] = 'X' })))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(mutate(func(b []byte) { b[4] = 99 })))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("ChecksumMismatch", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(mutate(func(b []byte) { b[len(b)-1] ^= 0xFF })))
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("ExpectedOutOfRange", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(mutate(func(b []byte) {
			binary.LittleEndian.PutUint64(b[20:], 64)
		})))
		var corrupt *ErrCorrupt
		require.ErrorAs(t, err, &corrupt)
		assert.Contains(t, corrupt.Reason, "expected index")
	})

	t.Run("Truncated", func(t *testing.T) {
		for _, cut := range []int{0, 10, fixedHeaderSize + 1, len(valid) - 1} {
			_, err := Decode(bytes.NewReader(valid[:cut]))
			var corrupt *ErrCorrupt
			require.ErrorAs(t, err, &corrupt, "cut at %d", cut)
			assert.NotNil(t, errors.Unwrap(corrupt))
		}
	})
}

func TestEncode_NameTooLong(t *testing.T) {
	ds := &Dataset{Name: strings.Repeat("x", 1<<16), Values: []int32{1}, Target: 1}
	err := Encode(io.Discard, ds, CompressionNone)
	assert.ErrorIs(t, err, conv.ErrOverflow)
}

func TestDecode_HeaderMustMatchValues(t *testing.T) {
	rng := testutil.NewRNG(9)

	tests := []struct {
		name     string
		ds       *Dataset
		expected int64
	}{
		{name: "AbsentClaimsPresent", ds: Generate(rng, 64, Absent), expected: 3},
		{name: "PresentClaimsAbsent", ds: Generate(rng, 64, Middle), expected: -1},
		{name: "WrongIndex", ds: Generate(rng, 64, Last), expected: 10},
	}

	for _, tt := range tests {
		for _, c := range []Compression{CompressionNone, CompressionLZ4} {
			t.Run(tt.name+"/"+c.String(), func(t *testing.T) {
				b := encode(t, tt.ds, c)
				binary.LittleEndian.PutUint64(b[20:], uint64(tt.expected))

				_, err := Decode(bytes.NewReader(b))
				var corrupt *ErrCorrupt
				require.ErrorAs(t, err, &corrupt)
				assert.Contains(t, corrupt.Reason, "target first occurs at")
			})
		}
	}

	t.Run("LaterDuplicate", func(t *testing.T) {
		ds := &Dataset{Name: "dup", Values: []int32{1, 7, 2, 7}, Target: 7, Expected: 1}
		b := encode(t, ds, CompressionNone)
		binary.LittleEndian.PutUint64(b[20:], 3)

		_, err := Decode(bytes.NewReader(b))
		var corrupt *ErrCorrupt
		require.ErrorAs(t, err, &corrupt)
		assert.Contains(t, corrupt.Reason, "expected index 3, target first occurs at 1")
	})
}

func TestDecode_SizeChecks(t *testing.T) {
	ds := Generate(testutil.NewRNG(2), 64, First)
	valid := encode(t, ds, CompressionNone)
	payloadLenAt := fixedHeaderSize + 2 + len(ds.Name)

	t.Run("RawPayloadTooShort", func(t *testing.T) {
		b := bytes.Clone(valid)
		binary.LittleEndian.PutUint64(b[payloadLenAt:], 64)

		_, err := Decode(bytes.NewReader(b))
		var corrupt *ErrCorrupt
		require.ErrorAs(t, err, &corrupt)
		assert.Contains(t, corrupt.Reason, "raw payload length 64, want 256")
	})

	t.Run("HugeCountWithSmallPayload", func(t *testing.T) {
		if math.MaxInt < MaxCount*4 {
			t.Skip("count is rejected as too large before the payload check")
		}
		b := bytes.Clone(valid)
		binary.LittleEndian.PutUint64(b[8:], MaxCount)

		_, err := Decode(bytes.NewReader(b))
		var corrupt *ErrCorrupt
		require.ErrorAs(t, err, &corrupt)
		assert.Contains(t, corrupt.Reason, "raw payload length")
	})

	t.Run("MaxBytes", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(valid), WithMaxBytes(255))
		assert.ErrorIs(t, err, ErrTooLarge)

		b := bytes.Clone(valid)
		binary.LittleEndian.PutUint64(b[8:], MaxCount)
		_, err = Decode(bytes.NewReader(b), WithMaxBytes(1<<20))
		assert.ErrorIs(t, err, ErrTooLarge)

		got, err := Decode(bytes.NewReader(valid), WithMaxBytes(256))
		require.NoError(t, err)
		assert.Len(t, got.Values, 64)
	})
}
