package model

import "github.com/hupe1980/datgo/hashing"

// ItemType tags the concrete kind of an Item.
type ItemType string

const (
	TypeAdjuster      ItemType = "adjuster"
	TypeArchive       ItemType = "archive"
	TypeBiosSet       ItemType = "biosset"
	TypeBlank         ItemType = "blank"
	TypeChip          ItemType = "chip"
	TypeConfiguration ItemType = "configuration"
	TypeDeviceRef     ItemType = "device_ref"
	TypeDipSwitch     ItemType = "dipswitch"
	TypeDisk          ItemType = "disk"
	TypeDisplay       ItemType = "display"
	TypeDriver        ItemType = "driver"
	TypeFile          ItemType = "file"
	TypeInfo          ItemType = "info"
	TypeInput         ItemType = "input"
	TypeMedia         ItemType = "media"
	TypePort          ItemType = "port"
	TypeRelease       ItemType = "release"
	TypeRom           ItemType = "rom"
	TypeSample        ItemType = "sample"
	TypeSharedFeat    ItemType = "sharedfeat"
	TypeSlot          ItemType = "slot"
	TypeSlotOption    ItemType = "slotoption"
	TypeSoftwareList  ItemType = "softwarelist"
	TypeSound         ItemType = "sound"
)

var knownTypes = map[ItemType]struct{}{
	TypeAdjuster: {}, TypeArchive: {}, TypeBiosSet: {}, TypeBlank: {}, TypeChip: {},
	TypeConfiguration: {}, TypeDeviceRef: {}, TypeDipSwitch: {}, TypeDisk: {},
	TypeDisplay: {}, TypeDriver: {}, TypeFile: {}, TypeInfo: {}, TypeInput: {},
	TypeMedia: {}, TypePort: {}, TypeRelease: {}, TypeRom: {}, TypeSample: {},
	TypeSharedFeat: {}, TypeSlot: {}, TypeSlotOption: {}, TypeSoftwareList: {},
	TypeSound: {},
}

// ParseItemType returns the ItemType for a tag, accepting the "deviceref"
// spelling some formats use.
func ParseItemType(s string) (ItemType, bool) {
	if s == "deviceref" {
		return TypeDeviceRef, true
	}
	t := ItemType(s)
	_, ok := knownTypes[t]
	return t, ok
}

// Roms and files carry the full hash set.
var fileHashes = []hashing.Type{
	hashing.CRC, hashing.MD2, hashing.MD4, hashing.MD5, hashing.RIPEMD128, hashing.RIPEMD160,
	hashing.SHA1, hashing.SHA256, hashing.SHA384, hashing.SHA512, hashing.SpamSum,
}

var hashFields = map[ItemType][]hashing.Type{
	TypeRom:   fileHashes,
	TypeFile:  fileHashes,
	TypeDisk:  {hashing.MD5, hashing.SHA1},
	TypeMedia: {hashing.MD5, hashing.SHA1, hashing.SHA256, hashing.SpamSum},
}

// HashFields returns the comparable hash types for t, or nil when the type
// carries no hashes.
func (t ItemType) HashFields() []hashing.Type {
	return hashFields[t]
}

// IsHashBearing reports whether items of type t carry hashes.
func (t ItemType) IsHashBearing() bool {
	return len(hashFields[t]) > 0
}

// HasSize reports whether items of type t carry a byte size.
func (t ItemType) HasSize() bool {
	return t == TypeRom || t == TypeFile
}

// ItemStatus is the dump status of a hash-bearing item.
type ItemStatus string

const (
	// StatusNone means hashes are known but unverified.
	StatusNone     ItemStatus = "none"
	StatusGood     ItemStatus = "good"
	StatusBadDump  ItemStatus = "baddump"
	StatusNoDump   ItemStatus = "nodump"
	StatusVerified ItemStatus = "verified"
)

// DupeType classifies how two items duplicate each other.
// The zero value means "not a duplicate".
type DupeType uint8

const (
	// DupeInternal means both items come from the same source.
	DupeInternal DupeType = 1 << iota
	// DupeExternal means the items come from different sources.
	DupeExternal
	// DupeHash means only the hashes match.
	DupeHash
	// DupeAll means hashes and machine names match.
	DupeAll
)

// IsDupe reports whether d marks any kind of duplicate.
func (d DupeType) IsDupe() bool { return d != 0 }

// Has reports whether all bits of flag are set in d.
func (d DupeType) Has(flag DupeType) bool { return d&flag == flag }

// String returns a readable classification.
func (d DupeType) String() string {
	switch d {
	case 0:
		return "none"
	case DupeInternal | DupeHash:
		return "internal-hash"
	case DupeInternal | DupeAll:
		return "internal-all"
	case DupeExternal | DupeHash:
		return "external-hash"
	case DupeExternal | DupeAll:
		return "external-all"
	default:
		return "invalid"
	}
}
