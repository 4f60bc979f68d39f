package model

import "github.com/hupe1980/datgo/field"

// Machine is a logical set (game, system or device) grouping items.
type Machine struct {
	Fields field.Document `json:"fields"`
}

// NewMachine creates a machine with the given name and description.
func NewMachine(name, description string) *Machine {
	m := &Machine{Fields: field.Document{}}
	m.Fields.SetString(MachineKeyName, name)
	m.Fields.SetString(MachineKeyDescription, description)
	return m
}

func (m *Machine) Name() string        { return m.Fields.GetString(MachineKeyName) }
func (m *Machine) Description() string { return m.Fields.GetString(MachineKeyDescription) }
func (m *Machine) CloneOf() string     { return m.Fields.GetString(MachineKeyCloneOf) }
func (m *Machine) RomOf() string       { return m.Fields.GetString(MachineKeyRomOf) }
func (m *Machine) SampleOf() string    { return m.Fields.GetString(MachineKeySampleOf) }
func (m *Machine) IsBios() bool        { return m.Fields.GetBool(MachineKeyIsBios) }
func (m *Machine) IsDevice() bool      { return m.Fields.GetBool(MachineKeyIsDevice) }

func (m *Machine) SetName(v string)        { m.Fields.SetString(MachineKeyName, v) }
func (m *Machine) SetDescription(v string) { m.Fields.SetString(MachineKeyDescription, v) }
func (m *Machine) SetCloneOf(v string)     { m.Fields.SetString(MachineKeyCloneOf, v) }
func (m *Machine) SetRomOf(v string)       { m.Fields.SetString(MachineKeyRomOf, v) }
func (m *Machine) SetSampleOf(v string)    { m.Fields.SetString(MachineKeySampleOf, v) }

// SetBios flags the machine as a BIOS set.
func (m *Machine) SetBios(v bool) { m.Fields[MachineKeyIsBios] = field.Bool(v) }

// SetDevice flags the machine as a device.
func (m *Machine) SetDevice(v bool) { m.Fields[MachineKeyIsDevice] = field.Bool(v) }

// Clone returns a deep copy.
func (m *Machine) Clone() *Machine {
	return &Machine{Fields: m.Fields.Clone()}
}
