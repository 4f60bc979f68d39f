package filter

import (
	"regexp"
	"strings"

	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/store"
)

// MachineDescriptionToName copies each machine's description over its name
// and rewrites clone-of, rom-of and sample-of references to follow the
// rename. Bucket keys are not recomputed. It returns the number of machines
// renamed.
func MachineDescriptionToName(st *store.Store) int {
	renamed := make(map[string]string)
	for _, m := range st.Machines() {
		desc := m.Description()
		if desc == "" || desc == m.Name() {
			continue
		}
		renamed[textutil.Fold(m.Name())] = desc
		m.SetName(desc)
	}
	if len(renamed) == 0 {
		return 0
	}

	follow := func(name string) string {
		if to, ok := renamed[textutil.Fold(name)]; ok {
			return to
		}
		return name
	}
	for _, m := range st.Machines() {
		m.SetCloneOf(follow(m.CloneOf()))
		m.SetRomOf(follow(m.RomOf()))
		m.SetSampleOf(follow(m.SampleOf()))
	}
	return len(renamed)
}

var sceneDate = regexp.MustCompile(`^\d\d\.\d\d\.\d\d-`)

// StripSceneDatesFromItems removes a leading "NN.NN.NN-" release date from
// machine names and descriptions. Bucket keys are not recomputed. It returns
// the number of machines changed.
func StripSceneDatesFromItems(st *store.Store) int {
	changed := 0
	for _, m := range st.Machines() {
		name, desc := m.Name(), m.Description()
		if !sceneDate.MatchString(name) && !sceneDate.MatchString(desc) {
			continue
		}
		m.SetName(sceneDate.ReplaceAllString(name, ""))
		m.SetDescription(sceneDate.ReplaceAllString(desc, ""))
		changed++
	}
	return changed
}

// SetOneRomPerGame gives every item its own machine, a copy of the original
// named "<machine>/<item>". Machines left without items are removed. It
// returns the number of machines created.
func SetOneRomPerGame(st *store.Store) (int, error) {
	type move struct {
		id   model.ItemID
		item *model.Item
	}
	byMachine := make(map[model.MachineID][]move)
	var order []model.MachineID
	for id, item := range st.Items() {
		if _, ok := byMachine[item.MachineID]; !ok {
			order = append(order, item.MachineID)
		}
		byMachine[item.MachineID] = append(byMachine[item.MachineID], move{id, item})
	}

	created := 0
	for _, mid := range order {
		orig, ok := st.GetMachine(mid)
		if !ok {
			continue
		}
		for _, mv := range byMachine[mid] {
			m := orig.Clone()
			name := orig.Name() + "/" + mv.item.Name()
			m.SetName(name)
			m.SetDescription(name)

			if err := st.RemapItemToMachine(mv.id, st.AddMachine(m)); err != nil {
				return created, err
			}
			created++
		}
		if err := st.RemoveMachine(mid); err != nil {
			return created, err
		}
	}
	return created, nil
}

// SetOneGamePerRegion keeps one machine per clone group: the first machine,
// parent first, whose name carries the earliest region of regions. The
// kept machine becomes a parent. Groups without any matching machine are
// left unchanged. It returns the number of machines removed.
func SetOneGamePerRegion(st *store.Store, regions []string) (int, error) {
	if len(regions) == 0 {
		return 0, nil
	}

	byName := make(map[string]model.MachineID)
	for id, m := range st.Machines() {
		if _, ok := byName[textutil.Fold(m.Name())]; !ok {
			byName[textutil.Fold(m.Name())] = id
		}
	}

	groups := make(map[model.MachineID][]model.MachineID)
	var parents []model.MachineID
	for id, m := range st.Machines() {
		parent := id
		if pid, ok := byName[textutil.Fold(m.CloneOf())]; ok && m.CloneOf() != "" {
			parent = pid
		}
		if _, ok := groups[parent]; !ok {
			parents = append(parents, parent)
		}
		if parent == id {
			groups[parent] = append([]model.MachineID{id}, groups[parent]...)
		} else {
			groups[parent] = append(groups[parent], id)
		}
	}

	removed := 0
	for _, parent := range parents {
		members := groups[parent]
		if len(members) < 2 {
			continue
		}

		keep, ok := pickRegion(st, members, regions)
		if !ok {
			continue
		}

		if keep != parent {
			if pm, ok := st.GetMachine(parent); ok {
				km, _ := st.GetMachine(keep)
				if textutil.EqualFold(km.RomOf(), pm.Name()) {
					km.SetRomOf(pm.RomOf())
				}
				km.SetCloneOf("")
			}
		}

		for _, id := range members {
			if id == keep {
				continue
			}
			if err := st.RemoveMachine(id); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func pickRegion(st *store.Store, members []model.MachineID, regions []string) (model.MachineID, bool) {
	tokens := make([][]string, len(members))
	for i, id := range members {
		if m, ok := st.GetMachine(id); ok {
			tokens[i] = regionTokens(m.Name())
		}
	}

	for _, region := range regions {
		for i, id := range members {
			for _, tok := range tokens[i] {
				if textutil.EqualFold(tok, region) {
					return id, true
				}
			}
		}
	}
	return model.NoID, false
}

// regionTokens returns the comma separated tags inside the parentheses of a
// machine name: "Pac-Man (USA, Europe) (Rev 1)" gives USA, Europe, Rev 1.
func regionTokens(name string) []string {
	var tokens []string
	for {
		open := strings.IndexByte(name, '(')
		if open < 0 {
			return tokens
		}
		end := strings.IndexByte(name[open:], ')')
		if end < 0 {
			return tokens
		}
		for _, tok := range strings.Split(name[open+1:open+end], ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		name = name[open+end+1:]
	}
}
