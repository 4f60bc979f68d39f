package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/datgo/field"
	"github.com/hupe1980/datgo/hashing"
	"github.com/hupe1980/datgo/model"
)

// Rom returns a rom item with a name and optional CRC.
func Rom(name, crc string) *model.Item {
	it := model.NewItem(model.TypeRom, field.Document{model.KeyName: field.String(name)})
	if crc != "" {
		it.SetHash(hashing.CRC, crc)
	}
	return it
}

// SizedRom returns a rom with a size and CRC.
func SizedRom(name, crc string, size int64) *model.Item {
	it := Rom(name, crc)
	it.Fields[model.KeySize] = field.Int(size)
	return it
}

// Disk returns a disk item with a name and optional SHA1.
func Disk(name, sha1 string) *model.Item {
	it := model.NewItem(model.TypeDisk, field.Document{model.KeyName: field.String(name)})
	if sha1 != "" {
		it.SetHash(hashing.SHA1, sha1)
	}
	return it
}

// Sample returns a sample item.
func Sample(name string) *model.Item {
	return model.NewItem(model.TypeSample, field.Document{model.KeyName: field.String(name)})
}

// DeviceRef returns a device reference naming another machine.
func DeviceRef(name string) *model.Item {
	return model.NewItem(model.TypeDeviceRef, field.Document{model.KeyName: field.String(name)})
}

// SlotOption returns a slot option whose device is devname.
func SlotOption(name, devname string) *model.Item {
	return model.NewItem(model.TypeSlotOption, field.Document{
		model.KeyName:    field.String(name),
		model.KeyDevName: field.String(devname),
	})
}

// Machine returns a machine; cloneOf also becomes rom-of when non-empty.
func Machine(name, cloneOf string) *model.Machine {
	m := model.NewMachine(name, name)
	m.SetCloneOf(cloneOf)
	m.SetRomOf(cloneOf)
	return m
}

// Fixture is a machine together with the items it owns.
type Fixture struct {
	Machine *model.Machine
	Items   []*model.Item
}

// Set builds a fixture.
func Set(m *model.Machine, items ...*model.Item) Fixture {
	return Fixture{Machine: m, Items: items}
}

// Loader is the subset of the store API fixtures are loaded through.
type Loader interface {
	AddMachine(m *model.Machine) model.MachineID
	AddItem(item *model.Item, machineID model.MachineID, sourceID model.SourceID, statsOnly bool) (model.ItemID, error)
}

// Load adds fixtures to a store under sourceID and returns the machine ids by
// machine name. It panics on load errors; fixtures are expected to be valid.
func Load(l Loader, sourceID model.SourceID, fixtures ...Fixture) map[string]model.MachineID {
	ids := make(map[string]model.MachineID, len(fixtures))
	for _, f := range fixtures {
		mid := l.AddMachine(f.Machine)
		ids[f.Machine.Name()] = mid
		for _, it := range f.Items {
			if _, err := l.AddItem(it, mid, sourceID, false); err != nil {
				panic(fmt.Errorf("testutil: load %s: %w", f.Machine.Name(), err))
			}
		}
	}
	return ids
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// CRC returns a random 8-digit hex CRC.
func (r *RNG) CRC() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%08x", r.rand.Uint32())
}

// Sets generates machines with itemsPerMachine roms each. Roughly a quarter
// of the machines are clones of an earlier machine and share one of its roms.
func (r *RNG) Sets(machines, itemsPerMachine int) []Fixture {
	fixtures := make([]Fixture, 0, machines)
	for i := range machines {
		name := fmt.Sprintf("game%05d", i)
		parent := ""
		if i > 0 && r.Intn(4) == 0 {
			parent = fixtures[r.Intn(len(fixtures))].Machine.Name()
			if p := fixtures[indexOf(fixtures, parent)].Machine.CloneOf(); p != "" {
				parent = p
			}
		}

		f := Set(Machine(name, parent))
		for j := range itemsPerMachine {
			f.Items = append(f.Items, SizedRom(fmt.Sprintf("%s.%d", name, j), r.CRC(), int64(1024*(j+1))))
		}
		if parent != "" {
			shared := fixtures[indexOf(fixtures, parent)].Items[0].Clone()
			f.Items = append(f.Items, shared)
		}
		fixtures = append(fixtures, f)
	}
	return fixtures
}

func indexOf(fixtures []Fixture, name string) int {
	for i := range fixtures {
		if fixtures[i].Machine.Name() == name {
			return i
		}
	}
	return -1
}
