package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/datgo/blobstore"
	"github.com/hupe1980/datgo/codec"
	"github.com/hupe1980/datgo/resource"
	"github.com/hupe1980/datgo/store"
)

type options struct {
	codec       codec.Codec
	compression Compression
	blockSize   int
	controller  *resource.Controller
}

// Option configures Save and Load.
type Option func(*options)

// WithCodec sets the payload codec used by Save. Load always uses the codec
// recorded in the header.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the block compression used by Save.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithBlockSize sets the uncompressed block size used by Save.
func WithBlockSize(n int) Option {
	return func(o *options) { o.blockSize = n }
}

// WithController throttles IO and reserves memory through rc.
func WithController(rc *resource.Controller) Option {
	return func(o *options) { o.controller = rc }
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:     codec.Default,
		blockSize: defaultBlockSize,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Encode serializes st into the snapshot format.
func Encode(st *store.Store, optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)
	if !o.compression.valid() {
		return nil, fmt.Errorf("snapshot: unknown compression %d", o.compression)
	}
	if len(o.codec.Name()) > 255 {
		return nil, fmt.Errorf("snapshot: codec name %q too long", o.codec.Name())
	}
	if _, ok := codec.ByName(o.codec.Name()); !ok {
		return nil, fmt.Errorf("%w: %q is not registered", ErrUnknownCodec, o.codec.Name())
	}

	payload, err := o.codec.Marshal(st.State())
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode state: %w", err)
	}

	h := Header{
		Version:     Version,
		Compression: o.compression,
		Codec:       o.codec.Name(),
		PayloadSize: uint64(len(payload)),
	}

	buf := make([]byte, 0, h.size()+len(payload)+trailerSize)
	buf = h.appendTo(buf)
	buf, err = appendBlocks(buf, payload, o.compression, o.blockSize)
	if err != nil {
		return nil, fmt.Errorf("snapshot: compress: %w", err)
	}
	return binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf)), nil
}

// Decode rebuilds a store from snapshot bytes.
func Decode(data []byte) (*store.Store, error) {
	if len(data) < fixedHeaderSize+lengthSize+trailerSize {
		return nil, corrupt("too small")
	}

	body := data[:len(data)-trailerSize]
	want := binary.LittleEndian.Uint32(data[len(body):])

	// Version and magic are checked before the checksum so a newer format
	// reports ErrUnsupportedVersion rather than a mismatch.
	h, err := parseHeader(body)
	if err != nil {
		return nil, err
	}
	if got := crc32.ChecksumIEEE(body); got != want {
		return nil, &ChecksumError{Expected: want, Actual: got}
	}

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, h.Codec)
	}

	payload, err := decodeBlocks(body[h.size():], h.Compression, h.PayloadSize)
	if err != nil {
		return nil, err
	}

	var state store.State
	if err := c.Unmarshal(payload, &state); err != nil {
		return nil, corrupt(err.Error())
	}

	st, err := store.FromState(&state)
	if err != nil {
		return nil, corrupt(err.Error())
	}
	return st, nil
}

// Save writes st to bs under name. The blob is replaced atomically on
// backends that support it.
func Save(ctx context.Context, bs blobstore.BlobStore, name string, st *store.Store, optFns ...Option) (int64, error) {
	o := applyOptions(optFns)

	data, err := Encode(st, optFns...)
	if err != nil {
		return 0, err
	}

	w, err := bs.Create(ctx, name)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(resource.NewWriter(ctx, w, o.controller), &sliceReader{b: data})
	if err == nil {
		err = w.Sync()
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = bs.Delete(context.WithoutCancel(ctx), name)
		return 0, fmt.Errorf("snapshot: write %s: %w", name, err)
	}
	return n, nil
}

// Load reads a snapshot from bs and rebuilds the store.
func Load(ctx context.Context, bs blobstore.BlobStore, name string, optFns ...Option) (*store.Store, error) {
	o := applyOptions(optFns)

	blob, err := bs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	size := blob.Size()
	if err := o.controller.AcquireMemory(ctx, size); err != nil {
		return nil, err
	}
	defer o.controller.ReleaseMemory(size)

	rc, err := blob.ReadRange(ctx, 0, size)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data := make([]byte, size)
	if _, err := io.ReadFull(resource.NewReader(ctx, rc, o.controller), data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, corrupt("short read")
		}
		return nil, err
	}

	st, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return st, nil
}

// sliceReader chunks writes so the IO limiter sees bounded requests.
type sliceReader struct {
	b []byte
}

const writeChunk = 64 * 1024

func (r *sliceReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), writeChunk)], r.b)
	r.b = r.b[n:]
	return n, nil
}
