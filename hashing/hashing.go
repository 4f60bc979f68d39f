package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"golang.org/x/crypto/md4"       //nolint:staticcheck // DAT files still carry MD4
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // DAT files still carry RIPEMD160
)

// Type identifies a hash algorithm by the field name DAT files use for it.
type Type uint8

const (
	// CRC is CRC-32 (IEEE).
	CRC Type = iota + 1
	MD2
	MD4
	MD5
	RIPEMD128
	RIPEMD160
	SHA1
	SHA256
	SHA384
	SHA512
	// SpamSum is the context-triggered piecewise hash used by some DATs.
	SpamSum
)

// All lists every hash type in canonical order (cheapest first).
var All = []Type{CRC, MD2, MD4, MD5, RIPEMD128, RIPEMD160, SHA1, SHA256, SHA384, SHA512, SpamSum}

// String returns the field name used for the hash.
func (t Type) String() string {
	switch t {
	case CRC:
		return "crc"
	case MD2:
		return "md2"
	case MD4:
		return "md4"
	case MD5:
		return "md5"
	case RIPEMD128:
		return "ripemd128"
	case RIPEMD160:
		return "ripemd160"
	case SHA1:
		return "sha1"
	case SHA256:
		return "sha256"
	case SHA384:
		return "sha384"
	case SHA512:
		return "sha512"
	case SpamSum:
		return "spamsum"
	default:
		return "unknown"
	}
}

// Parse returns the hash type for a field name.
func Parse(name string) (Type, bool) {
	for _, t := range All {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// Empty returns the canonical value of t for a zero-length input.
func Empty(t Type) string {
	return emptyValues[t]
}

var emptyValues = map[Type]string{
	CRC:       "00000000",
	MD2:       "8350e5a3e24c153df2275c9f80692773",
	MD4:       "31d6cfe0d16ae931b73c59d7e0c089c0",
	MD5:       "d41d8cd98f00b204e9800998ecf8427e",
	RIPEMD128: "cdf26213a150dc3ecb610f18f6b38b46",
	RIPEMD160: "9c1185a5c5e9fc54612808977ee8f548b2258d31",
	SHA1:      "da39a3ee5e6b4b0d3255bfef95601890afd80709",
	SHA256:    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	SHA384:    "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b",
	SHA512:    "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
	SpamSum:   "3::",
}

// Info is the result of Compute.
type Info struct {
	Size   int64
	Hashes map[Type]string
}

// computable lists the types Compute can produce.
var computable = []Type{CRC, MD4, MD5, RIPEMD160, SHA1, SHA256, SHA384, SHA512}

func newHash(t Type) hash.Hash {
	switch t {
	case CRC:
		return crc32.NewIEEE()
	case MD4:
		return md4.New()
	case MD5:
		return md5.New()
	case RIPEMD160:
		return ripemd160.New()
	case SHA1:
		return sha1.New()
	case SHA256:
		return sha256.New()
	case SHA384:
		return sha512.New384()
	case SHA512:
		return sha512.New()
	default:
		return nil
	}
}

// Compute reads r to EOF and returns its size and every computable hash.
// MD2, RIPEMD128 and SpamSum are not produced.
func Compute(r io.Reader) (Info, error) {
	hashers := make(map[Type]hash.Hash, len(computable))
	writers := make([]io.Writer, 0, len(computable))
	for _, t := range computable {
		h := newHash(t)
		hashers[t] = h
		writers = append(writers, h)
	}

	n, err := io.Copy(io.MultiWriter(writers...), r)
	if err != nil {
		return Info{}, fmt.Errorf("hashing: %w", err)
	}

	info := Info{Size: n, Hashes: make(map[Type]string, len(hashers))}
	for t, h := range hashers {
		info.Hashes[t] = hex.EncodeToString(h.Sum(nil))
	}
	return info, nil
}
