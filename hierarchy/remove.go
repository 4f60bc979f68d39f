package hierarchy

import (
	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/store"
)

// RemoveBiosAndDeviceSets deletes every machine flagged as BIOS or device
// together with its items.
func RemoveBiosAndDeviceSets(st *store.Store) error {
	if err := st.RequireKey(store.KeyMachine); err != nil {
		return err
	}

	var ids []model.MachineID
	for id, m := range st.Machines() {
		if m.IsBios() || m.IsDevice() {
			ids = append(ids, id)
		}
	}
	return removeMachines(st, ids)
}

// RemoveCloneSets deletes every clone whose parent is present, together
// with its items.
func RemoveCloneSets(st *store.Store) error {
	g, err := newGraph(st)
	if err != nil {
		return err
	}

	var ids []model.MachineID
	for id, m := range st.Machines() {
		parent := m.CloneOf()
		if parent == "" || textutil.EqualFold(parent, m.Name()) {
			continue
		}
		if _, ok := g.byName[textutil.Fold(parent)]; ok {
			ids = append(ids, id)
		}
	}
	return removeMachines(st, ids)
}

func removeMachines(st *store.Store, ids []model.MachineID) error {
	for _, id := range ids {
		if err := st.RemoveMachine(id); err != nil {
			return err
		}
	}
	return nil
}

// RemoveItemsFromCloneOfChild deletes the items of each clone that its
// parent already holds, and moves the parent's rom-of onto the clone.
func RemoveItemsFromCloneOfChild(st *store.Store) error {
	g, err := newGraph(st)
	if err != nil {
		return err
	}

	for _, s := range g.sets() {
		parent, ok := g.resolve(s.Machine.CloneOf(), s)
		if !ok {
			continue
		}
		if _, err := g.removeEquivalent(s, parent); err != nil {
			return err
		}
		s.Machine.SetRomOf(parent.Machine.RomOf())
	}
	return nil
}

// RemoveItemsFromRomOfChild deletes the items of each machine that its
// rom-of parent already holds.
func RemoveItemsFromRomOfChild(st *store.Store) error {
	g, err := newGraph(st)
	if err != nil {
		return err
	}

	for _, s := range g.sets() {
		parent, ok := g.resolve(s.Machine.RomOf(), s)
		if !ok {
			continue
		}
		if _, err := g.removeEquivalent(s, parent); err != nil {
			return err
		}
	}
	return nil
}

// RemoveMachineRelationshipTags clears clone-of, rom-of and sample-of on
// every machine.
func RemoveMachineRelationshipTags(st *store.Store) error {
	if err := st.RequireKey(store.KeyMachine); err != nil {
		return err
	}

	for _, m := range st.Machines() {
		m.SetCloneOf("")
		m.SetRomOf("")
		m.SetSampleOf("")
	}
	return nil
}
