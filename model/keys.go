package model

// Item field keys shared by all DAT formats.
const (
	KeyName     = "name"
	KeySize     = "size"
	KeyStatus   = "status"
	KeyMerge    = "merge"
	KeyBios     = "bios"
	KeyRegion   = "region"
	KeyLanguage = "language"
	KeyDate     = "date"
	KeyOptional = "optional"
	KeyDevName  = "devname"
	KeyDefault  = "default"
)

// Machine field keys.
const (
	MachineKeyName         = "name"
	MachineKeyDescription  = "description"
	MachineKeyCloneOf      = "cloneof"
	MachineKeyRomOf        = "romof"
	MachineKeySampleOf     = "sampleof"
	MachineKeyIsBios       = "isbios"
	MachineKeyIsDevice     = "isdevice"
	MachineKeyIsMechanical = "ismechanical"
	MachineKeyRunnable     = "runnable"
	MachineKeyManufacturer = "manufacturer"
	MachineKeyYear         = "year"
)

// Field path prefixes used by filters to address the machine and any item type.
const (
	PrefixMachine = "machine"
	PrefixItem    = "item"
)
