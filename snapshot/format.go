package snapshot

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/datgo/blobstore"
)

const (
	// Version is the current format version.
	Version uint16 = 1

	fixedHeaderSize = 8
	lengthSize      = 8
	trailerSize     = 4
)

var magic = [4]byte{'D', 'A', 'T', 'S'}

// Header describes a stored snapshot.
type Header struct {
	Version     uint16
	Compression Compression
	Codec       string
	PayloadSize uint64
}

func (h Header) size() int {
	return fixedHeaderSize + len(h.Codec) + lengthSize
}

func (h Header) appendTo(dst []byte) []byte {
	dst = append(dst, magic[:]...)
	dst = binary.LittleEndian.AppendUint16(dst, h.Version)
	dst = append(dst, byte(h.Compression), byte(len(h.Codec)))
	dst = append(dst, h.Codec...)
	return binary.LittleEndian.AppendUint64(dst, h.PayloadSize)
}

// parseFixed decodes magic, version, compression and the codec name length.
func parseFixed(b []byte) (Header, int, error) {
	if len(b) < fixedHeaderSize {
		return Header{}, 0, corrupt("truncated header")
	}
	if [4]byte(b[:4]) != magic {
		return Header{}, 0, corrupt("bad magic")
	}

	h := Header{
		Version:     binary.LittleEndian.Uint16(b[4:]),
		Compression: Compression(b[6]),
	}
	if h.Version == 0 || h.Version > Version {
		return Header{}, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !h.Compression.valid() {
		return Header{}, 0, corrupt(fmt.Sprintf("unknown compression %d", b[6]))
	}
	return h, int(b[7]), nil
}

func parseHeader(b []byte) (Header, error) {
	h, nameLen, err := parseFixed(b)
	if err != nil {
		return Header{}, err
	}
	rest := b[fixedHeaderSize:]
	if len(rest) < nameLen+lengthSize {
		return Header{}, corrupt("truncated header")
	}
	h.Codec = string(rest[:nameLen])
	h.PayloadSize = binary.LittleEndian.Uint64(rest[nameLen:])
	return h, nil
}

// ReadHeader reads only the header of a snapshot.
func ReadHeader(ctx context.Context, bs blobstore.BlobStore, name string) (Header, error) {
	blob, err := bs.Open(ctx, name)
	if err != nil {
		return Header{}, err
	}
	defer func() { _ = blob.Close() }()

	fixed := make([]byte, fixedHeaderSize)
	if err := readAt(ctx, blob, fixed, 0); err != nil {
		return Header{}, err
	}
	_, nameLen, err := parseFixed(fixed)
	if err != nil {
		return Header{}, err
	}

	full := make([]byte, fixedHeaderSize+nameLen+lengthSize)
	copy(full, fixed)
	if err := readAt(ctx, blob, full[fixedHeaderSize:], fixedHeaderSize); err != nil {
		return Header{}, err
	}
	return parseHeader(full)
}

func readAt(ctx context.Context, blob blobstore.Blob, p []byte, off int64) error {
	if off+int64(len(p)) > blob.Size() {
		return corrupt("truncated header")
	}
	n, err := blob.ReadAt(ctx, p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || err == io.EOF {
		return corrupt("truncated header")
	}
	return err
}
