package hierarchy

import (
	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/store"
)

// AddItemsFromDevices copies the items of every machine referenced by a
// device reference into the referencing machine. With useSlotOptions set,
// slot option devices are followed too. With deviceOnly set, only machines
// flagged as devices are followed. Device references copied along are
// followed in turn. Items the machine already holds are skipped.
func AddItemsFromDevices(st *store.Store, deviceOnly, useSlotOptions bool) error {
	g, err := newGraph(st)
	if err != nil {
		return err
	}

	for _, s := range g.sets() {
		seen := map[string]struct{}{textutil.Fold(s.Machine.Name()): {}}
		queue := deviceNames(g.items(s), useSlotOptions)

		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]

			folded := textutil.Fold(name)
			if _, ok := seen[folded]; ok {
				continue
			}
			seen[folded] = struct{}{}

			dev, ok := g.resolve(name, s)
			if !ok || (deviceOnly && !dev.Machine.IsDevice()) {
				continue
			}

			items := g.items(dev)
			if _, err := g.copyInto(s, items, true, nil); err != nil {
				return err
			}
			queue = append(queue, deviceNames(items, useSlotOptions)...)
		}
	}
	return nil
}

func deviceNames(items []*model.Item, useSlotOptions bool) []string {
	var names []string
	for _, item := range items {
		switch item.Type {
		case model.TypeDeviceRef:
			if n := item.Name(); n != "" {
				names = append(names, n)
			}
		case model.TypeSlotOption:
			if !useSlotOptions {
				continue
			}
			if n := item.Fields.GetString(model.KeyDevName); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}

// AddItemsFromCloneOfParent copies the items of each clone's parent into the
// clone and moves the parent's rom-of onto the clone, so a later
// RemoveItemsFromRomOfChild strips only BIOS items.
func AddItemsFromCloneOfParent(st *store.Store) error {
	return addFromParent(st, (*model.Machine).CloneOf, true)
}

// AddItemsFromRomOfParent copies the items of each machine's rom-of parent
// into the machine.
func AddItemsFromRomOfParent(st *store.Store) error {
	return addFromParent(st, (*model.Machine).RomOf, false)
}

func addFromParent(st *store.Store, parentOf func(*model.Machine) string, inheritRomOf bool) error {
	g, err := newGraph(st)
	if err != nil {
		return err
	}

	for _, s := range g.sets() {
		parent, ok := g.resolve(parentOf(s.Machine), s)
		if !ok {
			continue
		}
		if _, err := g.copyInto(s, g.items(parent), true, nil); err != nil {
			return err
		}
		if inheritRomOf {
			s.Machine.SetRomOf(parent.Machine.RomOf())
		}
	}
	return nil
}

// AddItemsFromChildren copies the items of every clone up into its parent.
// With subfolder set, copied items are renamed "<clone>/<item>". Unless
// skipDedup is set, items the parent already holds are skipped.
func AddItemsFromChildren(st *store.Store, subfolder, skipDedup bool) error {
	g, err := newGraph(st)
	if err != nil {
		return err
	}

	for _, s := range g.sets() {
		parent, ok := g.resolve(s.Machine.CloneOf(), s)
		if !ok {
			continue
		}

		var rename func(*model.Item)
		if subfolder {
			prefix := s.Machine.Name() + "/"
			rename = func(it *model.Item) { it.SetName(prefix + it.Name()) }
		}
		if _, err := g.copyInto(parent, g.items(s), !skipDedup, rename); err != nil {
			return err
		}
	}
	return nil
}
