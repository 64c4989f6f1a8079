package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/linsearch"
	"github.com/hupe1980/linsearch/internal/compress"
	"github.com/hupe1980/linsearch/internal/conv"
	"github.com/hupe1980/linsearch/internal/hash"
	"github.com/hupe1980/linsearch/internal/mem"
)

// Compression selects the payload codec.
type Compression = compress.Type

const (
	// CompressionNone stores the payload raw.
	CompressionNone = compress.None
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 = compress.LZ4
	// CompressionZSTD uses ZSTD compression.
	CompressionZSTD = compress.ZSTD
)

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, bool) {
	return compress.ParseType(s)
}

const (
	// Version is the current LSDS format version.
	Version = 1

	// MaxCount is the largest sequence length the format accepts.
	MaxCount = math.MaxInt32

	fixedHeaderSize = 4 + 1 + 1 + 2 + 8 + 4 + 8
)

var magic = [4]byte{'L', 'S', 'D', 'S'}

// Encode writes ds to w in LSDS format.
func Encode(w io.Writer, ds *Dataset, c Compression) error {
	if len(ds.Values) > MaxCount {
		return fmt.Errorf("dataset: %d values exceeds maximum of %d", len(ds.Values), MaxCount)
	}
	nameLen, err := conv.IntToUint16(len(ds.Name))
	if err != nil {
		return fmt.Errorf("dataset: name length: %w", err)
	}

	raw := make([]byte, 4*len(ds.Values))
	for i, v := range ds.Values {
		binary.LittleEndian.PutUint32(raw[4*i:], uint32(v))
	}
	sum := hash.CRC32C(raw)

	payload, applied, err := compress.Compress(raw, c)
	if err != nil {
		return fmt.Errorf("dataset: compress: %w", err)
	}

	hdr := make([]byte, 0, fixedHeaderSize+2+len(ds.Name)+8+4)
	hdr = append(hdr, magic[:]...)
	hdr = append(hdr, Version, byte(applied), 0, 0)
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(len(ds.Values)))
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(ds.Target))
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(int64(ds.Expected)))
	hdr = binary.LittleEndian.AppendUint16(hdr, nameLen)
	hdr = append(hdr, ds.Name...)
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(len(payload)))
	hdr = binary.LittleEndian.AppendUint32(hdr, sum)

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// DecodeOption configures Decode and Load.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	maxBytes int64
}

// WithMaxBytes rejects datasets whose values would occupy more than n bytes
// before anything is allocated for them. Zero or less means no cap.
func WithMaxBytes(n int64) DecodeOption {
	return func(o *decodeOptions) { o.maxBytes = n }
}

// Decode reads an LSDS dataset from r. The decoded values start on a
// 64-byte boundary.
//
// The header is cross-checked against the payload: Expected must be the
// index of the first occurrence of Target, or -1 when Target is absent.
func Decode(r io.Reader, optFns ...DecodeOption) (*Dataset, error) {
	var opts decodeOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	var fixed [fixedHeaderSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, &ErrCorrupt{Reason: "short header", cause: err}
	}
	if [4]byte(fixed[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if fixed[4] != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, fixed[4])
	}
	c := Compression(fixed[5])

	count := binary.LittleEndian.Uint64(fixed[8:])
	target := int32(binary.LittleEndian.Uint32(fixed[16:]))
	expected := int64(binary.LittleEndian.Uint64(fixed[20:]))

	if count > MaxCount {
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("count %d exceeds maximum", count)}
	}
	if expected < -1 || expected >= int64(count) {
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("expected index %d out of range", expected)}
	}

	var nameLen [2]byte
	if _, err := io.ReadFull(r, nameLen[:]); err != nil {
		return nil, &ErrCorrupt{Reason: "short name length", cause: err}
	}
	name := make([]byte, binary.LittleEndian.Uint16(nameLen[:]))
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, &ErrCorrupt{Reason: "short name", cause: err}
	}

	var trailer [12]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, &ErrCorrupt{Reason: "short payload header", cause: err}
	}
	payloadLen := binary.LittleEndian.Uint64(trailer[0:])
	sum := binary.LittleEndian.Uint32(trailer[8:])

	// count <= MaxInt32, so the product cannot wrap a uint64.
	rawLen, err := conv.Uint64ToInt(count * 4)
	if err != nil {
		return nil, fmt.Errorf("%w: %d values", ErrTooLarge, count)
	}
	if opts.maxBytes > 0 && int64(rawLen) > opts.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, rawLen, opts.maxBytes)
	}
	n, err := conv.Uint64ToInt(payloadLen)
	switch {
	case err != nil || n > rawLen:
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("payload length %d exceeds raw size %d", payloadLen, rawLen)}
	case c == CompressionNone && n != rawLen:
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("raw payload length %d, want %d", n, rawLen)}
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, &ErrCorrupt{Reason: "short payload", cause: err}
	}

	raw, err := compress.Decompress(payload, c, rawLen)
	if err != nil {
		if errors.Is(err, compress.ErrSizeMismatch) {
			return nil, &ErrCorrupt{Reason: "payload size", cause: err}
		}
		return nil, &ErrCorrupt{Reason: "decompress " + c.String(), cause: err}
	}
	if hash.CRC32C(raw) != sum {
		return nil, ErrChecksumMismatch
	}

	values := mem.AllocAlignedInt32(rawLen / 4)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
	}

	// The checksum covers the payload only, so the header's answer is
	// checked against the values it describes.
	if first := linsearch.IndexLibrary(values, target); int64(first) != expected {
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("expected index %d, target first occurs at %d", expected, first)}
	}

	return &Dataset{
		Name:     string(name),
		Values:   values,
		Target:   target,
		Expected: int(expected),
	}, nil
}
