package snapshot

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload block compression.
type Compression uint8

const (
	// CompressionNone stores blocks raw.
	CompressionNone Compression = 0
	// CompressionLZ4 favors speed.
	CompressionLZ4 Compression = 1
	// CompressionZSTD favors ratio.
	CompressionZSTD Compression = 2
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd". The empty string means none.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("snapshot: unknown compression %q", s)
	}
}

func (c Compression) valid() bool {
	return c <= CompressionZSTD
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

const (
	blockHeaderSize  = 8
	defaultBlockSize = 256 * 1024
	// Upper bound on the uncompressed size of a single block.
	maxBlockSize = 64 << 20
)

// appendBlocks splits data into blocks, compresses each and appends them to
// dst. Blocks that do not shrink below 90% are stored raw.
func appendBlocks(dst, data []byte, c Compression, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	blockSize = min(blockSize, maxBlockSize)

	for len(data) > 0 {
		n := min(len(data), blockSize)
		block := data[:n]
		data = data[n:]

		packed, err := compressBlock(block, c)
		if err != nil {
			return nil, err
		}

		var hdr [blockHeaderSize]byte
		binary.LittleEndian.PutUint32(hdr[0:], uint32(len(block)))
		if packed == nil || len(packed) > len(block)*9/10 {
			dst = append(dst, hdr[:]...)
			dst = append(dst, block...)
			continue
		}
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(packed)))
		dst = append(dst, hdr[:]...)
		dst = append(dst, packed...)
	}
	return dst, nil
}

func compressBlock(block []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(block)))
		n, err := lz4.CompressBlock(block, buf, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil // incompressible
		}
		return buf[:n], nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(block, nil), nil
	default:
		return nil, nil
	}
}

// decodeBlocks reverses appendBlocks. want is the expected total length.
// Sizes read from the input are checked before anything is allocated for them.
func decodeBlocks(data []byte, c Compression, want uint64) ([]byte, error) {
	// Every block spends at least a header in data and yields at most
	// maxBlockSize bytes.
	if want > uint64(len(data)/blockHeaderSize)*maxBlockSize {
		return nil, corrupt(fmt.Sprintf("payload too large: header says %d for %d bytes", want, len(data)))
	}
	out := make([]byte, 0, min(want, uint64(len(data))))
	var got uint64

	for len(data) > 0 {
		if len(data) < blockHeaderSize {
			return nil, corrupt("truncated block header")
		}
		rawSize := binary.LittleEndian.Uint32(data[0:])
		packedSize := binary.LittleEndian.Uint32(data[4:])
		data = data[blockHeaderSize:]

		if rawSize > maxBlockSize {
			return nil, corrupt(fmt.Sprintf("block too large: %d", rawSize))
		}
		got += uint64(rawSize)
		if got > want {
			return nil, corrupt(fmt.Sprintf("payload too large: blocks exceed %d", want))
		}

		if packedSize == 0 {
			if uint64(len(data)) < uint64(rawSize) {
				return nil, corrupt("truncated raw block")
			}
			out = append(out, data[:rawSize]...)
			data = data[rawSize:]
			continue
		}

		if uint64(len(data)) < uint64(packedSize) {
			return nil, corrupt("truncated compressed block")
		}
		block, err := decompressBlock(data[:packedSize], rawSize, c)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		data = data[packedSize:]
	}

	if uint64(len(out)) != want {
		return nil, corrupt(fmt.Sprintf("payload length %d, header says %d", len(out), want))
	}
	return out, nil
}

func decompressBlock(packed []byte, rawSize uint32, c Compression) ([]byte, error) {
	result := make([]byte, rawSize)

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(packed, result)
		if err != nil {
			return nil, corrupt(err.Error())
		}
		if uint32(n) != rawSize {
			return nil, corrupt("decompressed size mismatch")
		}
		return result, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(packed, result[:0])
		if err != nil {
			return nil, corrupt(err.Error())
		}
		if uint32(len(decoded)) != rawSize {
			return nil, corrupt("decompressed size mismatch")
		}
		return decoded, nil
	default:
		return nil, corrupt("compressed block in uncompressed snapshot")
	}
}
