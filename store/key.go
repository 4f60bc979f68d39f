package store

import (
	"fmt"

	"github.com/hupe1980/datgo/hashing"
	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
)

// ItemKey selects the function items are bucketed by.
type ItemKey uint8

const (
	// KeyNone puts every item into the "" bucket. A new store starts here.
	KeyNone ItemKey = iota
	KeyMachine
	KeyCRC
	KeyMD2
	KeyMD4
	KeyMD5
	KeyRIPEMD128
	KeyRIPEMD160
	KeySHA1
	KeySHA256
	KeySHA384
	KeySHA512
	KeySpamSum
)

var keyHashes = map[ItemKey]hashing.Type{
	KeyCRC:       hashing.CRC,
	KeyMD2:       hashing.MD2,
	KeyMD4:       hashing.MD4,
	KeyMD5:       hashing.MD5,
	KeyRIPEMD128: hashing.RIPEMD128,
	KeyRIPEMD160: hashing.RIPEMD160,
	KeySHA1:      hashing.SHA1,
	KeySHA256:    hashing.SHA256,
	KeySHA384:    hashing.SHA384,
	KeySHA512:    hashing.SHA512,
	KeySpamSum:   hashing.SpamSum,
}

// HashType returns the hash a hash key buckets by.
func (k ItemKey) HashType() (hashing.Type, bool) {
	t, ok := keyHashes[k]
	return t, ok
}

// IsHash reports whether k is one of the hash keys.
func (k ItemKey) IsHash() bool {
	_, ok := keyHashes[k]
	return ok
}

// String returns the key name.
func (k ItemKey) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyMachine:
		return "machine"
	}
	if t, ok := keyHashes[k]; ok {
		return t.String()
	}
	return fmt.Sprintf("ItemKey(%d)", uint8(k))
}

// ParseItemKey returns the key for a name as produced by String.
func ParseItemKey(name string) (ItemKey, bool) {
	switch name {
	case "", "none":
		return KeyNone, true
	case "machine", "game":
		return KeyMachine, true
	}
	for k, t := range keyHashes {
		if t.String() == name {
			return k, true
		}
	}
	return KeyNone, false
}

// BucketKey computes the bucket name of an item under key.
//
// Machine keys are "<source index, 10 digits>-<machine name>", or just the
// machine name when noRename is set. Hash keys are the item's hash value;
// an item whose type does not carry that hash, or that lacks it, maps to "".
func BucketKey(item *model.Item, machine *model.Machine, source *model.Source, key ItemKey, lowercase, noRename bool) string {
	if item == nil {
		return ""
	}

	var name string
	switch {
	case key == KeyMachine:
		if machine == nil {
			return ""
		}
		name = machineKey(machine.Name(), source, noRename)
	case key.IsHash():
		t := keyHashes[key]
		if !carriesHash(item.Type, t) {
			return ""
		}
		name = item.Hash(t)
	default:
		return ""
	}

	if lowercase {
		name = textutil.Lower(name)
	}
	return name
}

func machineKey(name string, source *model.Source, noRename bool) string {
	if noRename {
		return name
	}
	index := 0
	if source != nil {
		index = source.Index
	}
	return fmt.Sprintf("%010d-%s", index, name)
}

func carriesHash(t model.ItemType, h hashing.Type) bool {
	for _, f := range t.HashFields() {
		if f == h {
			return true
		}
	}
	return false
}
