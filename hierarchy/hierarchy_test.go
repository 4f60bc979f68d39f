package hierarchy_test

import (
	"slices"
	"testing"

	"github.com/hupe1980/datgo/hierarchy"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/store"
	"github.com/hupe1980/datgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, fixtures ...testutil.Fixture) *store.Store {
	t.Helper()
	st := store.New(store.WithNoRename(true))
	src := st.AddSource(model.NewSource(0, "test.dat"))
	testutil.Load(st, src, fixtures...)
	st.BucketBy(store.KeyMachine)
	return st
}

func names(st *store.Store, bucket string) []string {
	var out []string
	for _, e := range st.GetItemsForBucket(bucket, true) {
		out = append(out, e.Item.Name())
	}
	slices.Sort(out)
	return out
}

func machine(t *testing.T, st *store.Store, name string) *model.Machine {
	t.Helper()
	for _, m := range st.Machines() {
		if m.Name() == name {
			return m
		}
	}
	t.Fatalf("machine %q not found", name)
	return nil
}

func parentAndChild() []testutil.Fixture {
	parent := testutil.Machine("parent", "")
	parent.SetRomOf("romof")
	return []testutil.Fixture{
		testutil.Set(parent, testutil.Rom("a.bin", "deadbeef")),
		testutil.Set(testutil.Machine("child", "parent"),
			testutil.Rom("a.bin", "deadbeef"),
			testutil.Rom("b.bin", "cafebabe"),
		),
	}
}

func TestAddItemsFromCloneOfParent(t *testing.T) {
	st := load(t, parentAndChild()...)

	require.NoError(t, hierarchy.AddItemsFromCloneOfParent(st))
	assert.Len(t, st.GetItemsForBucket("child", false), 2)
	assert.Equal(t, "romof", machine(t, st, "child").RomOf())

	require.NoError(t, hierarchy.AddItemsFromCloneOfParent(st))
	assert.Len(t, st.GetItemsForBucket("child", false), 2)
}

func TestAddItemsFromCloneOfParentCopiesMissing(t *testing.T) {
	st := load(t,
		testutil.Set(testutil.Machine("parent", ""), testutil.Rom("a.bin", "deadbeef"), testutil.Rom("p.bin", "00000001")),
		testutil.Set(testutil.Machine("child", "parent"), testutil.Rom("b.bin", "cafebabe")),
	)

	require.NoError(t, hierarchy.AddItemsFromCloneOfParent(st))
	assert.Equal(t, []string{"a.bin", "b.bin", "p.bin"}, names(st, "child"))

	for _, e := range st.GetItemsForBucket("child", false) {
		m, ok := st.GetMachineForItem(e.ID)
		require.True(t, ok)
		assert.Equal(t, "child", m.Name())
	}
	assert.Equal(t, int64(5), st.Statistics().TotalItems())
}

func TestRemoveItemsFromCloneOfChild(t *testing.T) {
	st := load(t, parentAndChild()...)

	require.NoError(t, hierarchy.RemoveItemsFromCloneOfChild(st))
	assert.Equal(t, []string{"b.bin"}, names(st, "child"))
	assert.Equal(t, "romof", machine(t, st, "child").RomOf())
	assert.Equal(t, []string{"a.bin"}, names(st, "parent"))

	require.NoError(t, hierarchy.RemoveItemsFromCloneOfChild(st))
	assert.Equal(t, []string{"b.bin"}, names(st, "child"))
}

func TestCloneOfResolvesThroughMachineKeys(t *testing.T) {
	tests := []struct {
		name      string
		opts      []store.Option
		parent    string
		child     string
		cloneOf   string
		parentKey string
		childKey  string
	}{
		{
			name:      "default keys",
			parent:    "parent",
			child:     "child",
			cloneOf:   "parent",
			parentKey: "0000000003-parent",
			childKey:  "0000000003-child",
		},
		{
			name:      "lowercase keys",
			opts:      []store.Option{store.WithLowercaseKeys(true)},
			parent:    "Parent",
			child:     "Child",
			cloneOf:   "PARENT",
			parentKey: "0000000003-parent",
			childKey:  "0000000003-child",
		},
		{
			name:      "lowercase keys without rename",
			opts:      []store.Option{store.WithLowercaseKeys(true), store.WithNoRename(true)},
			parent:    "Parent",
			child:     "Child",
			cloneOf:   "parent",
			parentKey: "parent",
			childKey:  "child",
		},
	}

	build := func(t *testing.T, opts []store.Option, parent, child, cloneOf string) *store.Store {
		t.Helper()
		st := store.New(opts...)
		st.AddSource(model.NewSource(0, "other.dat"))
		src := st.AddSource(model.NewSource(3, "test.dat"))
		testutil.Load(st, src,
			testutil.Set(testutil.Machine(parent, ""), testutil.Rom("a.bin", "deadbeef"), testutil.Rom("p.bin", "00000001")),
			testutil.Set(testutil.Machine(child, cloneOf), testutil.Rom("a.bin", "deadbeef"), testutil.Rom("b.bin", "cafebabe")),
		)
		st.BucketBy(store.KeyMachine)
		return st
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := build(t, tt.opts, tt.parent, tt.child, tt.cloneOf)
			assert.Equal(t, []string{tt.childKey, tt.parentKey}, st.BucketKeys())

			require.NoError(t, hierarchy.AddItemsFromCloneOfParent(st))
			assert.Equal(t, []string{"a.bin", "b.bin", "p.bin"}, names(st, tt.childKey))
			assert.Equal(t, []string{"a.bin", "p.bin"}, names(st, tt.parentKey))

			st = build(t, tt.opts, tt.parent, tt.child, tt.cloneOf)
			require.NoError(t, hierarchy.RemoveItemsFromCloneOfChild(st))
			assert.Equal(t, []string{"b.bin"}, names(st, tt.childKey))
			assert.Equal(t, []string{"a.bin", "p.bin"}, names(st, tt.parentKey))
		})
	}
}

func TestMissingParentIsNotAnError(t *testing.T) {
	st := load(t, testutil.Set(testutil.Machine("orphan", "missing"), testutil.Rom("a.bin", "deadbeef")))

	ops := map[string]func(*store.Store) error{
		"AddItemsFromCloneOfParent":   hierarchy.AddItemsFromCloneOfParent,
		"AddItemsFromRomOfParent":     hierarchy.AddItemsFromRomOfParent,
		"RemoveItemsFromCloneOfChild": hierarchy.RemoveItemsFromCloneOfChild,
		"RemoveItemsFromRomOfChild":   hierarchy.RemoveItemsFromRomOfChild,
		"RemoveCloneSets":             hierarchy.RemoveCloneSets,
		"AddItemsFromChildren":        func(st *store.Store) error { return hierarchy.AddItemsFromChildren(st, true, false) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, op(st))
			assert.Equal(t, []string{"a.bin"}, names(st, "orphan"))
			assert.Equal(t, "missing", machine(t, st, "orphan").CloneOf())
		})
	}
}

func TestOperationsRequireMachineBucketing(t *testing.T) {
	ops := map[string]func(*store.Store) error{
		"AddItemsFromDevices":           func(st *store.Store) error { return hierarchy.AddItemsFromDevices(st, false, false) },
		"AddItemsFromCloneOfParent":     hierarchy.AddItemsFromCloneOfParent,
		"AddItemsFromRomOfParent":       hierarchy.AddItemsFromRomOfParent,
		"AddItemsFromChildren":          func(st *store.Store) error { return hierarchy.AddItemsFromChildren(st, false, false) },
		"RemoveBiosAndDeviceSets":       hierarchy.RemoveBiosAndDeviceSets,
		"RemoveCloneSets":               hierarchy.RemoveCloneSets,
		"RemoveItemsFromCloneOfChild":   hierarchy.RemoveItemsFromCloneOfChild,
		"RemoveItemsFromRomOfChild":     hierarchy.RemoveItemsFromRomOfChild,
		"RemoveMachineRelationshipTags": hierarchy.RemoveMachineRelationshipTags,
		"Apply":                         func(st *store.Store) error { return hierarchy.Apply(st, hierarchy.MergeSplit) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			st := store.New()
			assert.ErrorIs(t, op(st), store.ErrNotBucketed)

			st.BucketBy(store.KeyCRC)
			assert.ErrorIs(t, op(st), store.ErrWrongBucketing)
		})
	}
}

func deviceFixtures() []testutil.Fixture {
	z80 := testutil.Machine("z80", "")
	z80.SetDevice(true)
	clock := testutil.Machine("clock", "")
	clock.SetDevice(true)
	fdc := testutil.Machine("fdc", "")
	fdc.SetDevice(true)
	return []testutil.Fixture{
		testutil.Set(testutil.Machine("game", ""),
			testutil.Rom("game.bin", "00000001"),
			testutil.DeviceRef("z80"),
			testutil.SlotOption("ext", "fdc"),
		),
		testutil.Set(z80, testutil.Rom("z80.bin", "00000002"), testutil.DeviceRef("clock")),
		testutil.Set(clock, testutil.Rom("clock.bin", "00000003")),
		testutil.Set(fdc, testutil.Rom("fdc.bin", "00000004")),
		testutil.Set(testutil.Machine("plain", ""), testutil.Rom("plain.bin", "00000005")),
	}
}

func TestAddItemsFromDevices(t *testing.T) {
	st := load(t, deviceFixtures()...)

	require.NoError(t, hierarchy.AddItemsFromDevices(st, false, false))
	assert.Equal(t, []string{"clock", "clock.bin", "ext", "game.bin", "z80", "z80.bin"}, names(st, "game"))
	assert.Equal(t, []string{"clock", "clock.bin", "z80.bin"}, names(st, "z80"))

	before := st.ItemCount()
	require.NoError(t, hierarchy.AddItemsFromDevices(st, false, false))
	assert.Equal(t, before, st.ItemCount())
}

func TestAddItemsFromDevicesSlotOptions(t *testing.T) {
	st := load(t, deviceFixtures()...)

	require.NoError(t, hierarchy.AddItemsFromDevices(st, true, true))
	assert.Contains(t, names(st, "game"), "fdc.bin")
	assert.Contains(t, names(st, "game"), "clock.bin")
}

func TestAddItemsFromDevicesDeviceOnly(t *testing.T) {
	st := load(t,
		testutil.Set(testutil.Machine("game", ""), testutil.Rom("game.bin", "00000001"), testutil.DeviceRef("plain")),
		testutil.Set(testutil.Machine("plain", ""), testutil.Rom("plain.bin", "00000005")),
	)

	require.NoError(t, hierarchy.AddItemsFromDevices(st, true, false))
	assert.Equal(t, []string{"game.bin", "plain"}, names(st, "game"))

	require.NoError(t, hierarchy.AddItemsFromDevices(st, false, false))
	assert.Equal(t, []string{"game.bin", "plain", "plain.bin"}, names(st, "game"))
}

func TestAddItemsFromChildren(t *testing.T) {
	fixtures := func() []testutil.Fixture {
		return []testutil.Fixture{
			testutil.Set(testutil.Machine("parent", ""), testutil.Rom("a.bin", "00000001")),
			testutil.Set(testutil.Machine("child", "parent"),
				testutil.Rom("a.bin", "00000001"),
				testutil.Rom("c.bin", "00000002"),
			),
		}
	}

	tests := []struct {
		name      string
		subfolder bool
		skipDedup bool
		want      []string
	}{
		{"dedup", false, false, []string{"a.bin", "c.bin"}},
		{"skip dedup", false, true, []string{"a.bin", "a.bin", "c.bin"}},
		{"subfolder", true, false, []string{"a.bin", "child/a.bin", "child/c.bin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := load(t, fixtures()...)
			require.NoError(t, hierarchy.AddItemsFromChildren(st, tt.subfolder, tt.skipDedup))
			assert.Equal(t, tt.want, names(st, "parent"))
			assert.Len(t, st.GetItemsForBucket("child", false), 2)
		})
	}
}

func TestRemoveBiosAndDeviceSets(t *testing.T) {
	bios := testutil.Machine("neogeo", "")
	bios.SetBios(true)
	st := load(t, append(deviceFixtures(), testutil.Set(bios, testutil.Rom("sp-s2.sp1", "9036d879")))...)

	require.NoError(t, hierarchy.RemoveBiosAndDeviceSets(st))
	assert.Equal(t, []string{"game", "plain"}, st.BucketKeys())
	assert.Equal(t, 2, st.MachineCount())
	assert.Equal(t, int64(2), st.Statistics().MachineCount)
}

func TestRemoveCloneSets(t *testing.T) {
	st := load(t,
		testutil.Set(testutil.Machine("parent", ""), testutil.Rom("a.bin", "00000001")),
		testutil.Set(testutil.Machine("child", "parent"), testutil.Rom("c.bin", "00000002")),
		testutil.Set(testutil.Machine("orphan", "missing"), testutil.Rom("o.bin", "00000003")),
	)

	require.NoError(t, hierarchy.RemoveCloneSets(st))
	assert.Equal(t, []string{"orphan", "parent"}, st.BucketKeys())
}

func TestRemoveMachineRelationshipTags(t *testing.T) {
	child := testutil.Machine("child", "parent")
	child.SetSampleOf("parent")
	st := load(t,
		testutil.Set(testutil.Machine("parent", "")),
		testutil.Set(child, testutil.Rom("c.bin", "00000002")),
	)

	require.NoError(t, hierarchy.RemoveMachineRelationshipTags(st))
	assert.Empty(t, child.CloneOf())
	assert.Empty(t, child.RomOf())
	assert.Empty(t, child.SampleOf())
}

func neogeo() []testutil.Fixture {
	bios := testutil.Machine("neogeo", "")
	bios.SetBios(true)
	parent := testutil.Machine("mslug", "")
	parent.SetRomOf("neogeo")
	return []testutil.Fixture{
		testutil.Set(bios, testutil.Rom("sp-s2.sp1", "9036d879")),
		testutil.Set(parent,
			testutil.Rom("201-p1.p2", "081293a9"),
			testutil.Rom("sp-s2.sp1", "9036d879"),
		),
		testutil.Set(testutil.Machine("mslugx", "mslug"),
			testutil.Rom("201-p1.p2", "081293a9"),
			testutil.Rom("250-p1.p1", "81f1f60b"),
			testutil.Rom("sp-s2.sp1", "9036d879"),
		),
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		merge hierarchy.MergeType
		want  map[string][]string
	}{
		{hierarchy.MergeSplit, map[string][]string{
			"mslug":  {"201-p1.p2"},
			"mslugx": {"250-p1.p1"},
			"neogeo": {"sp-s2.sp1"},
		}},
		{hierarchy.MergeMerged, map[string][]string{
			"mslug":  {"201-p1.p2", "250-p1.p1"},
			"neogeo": {"sp-s2.sp1"},
		}},
		{hierarchy.MergeNonMerged, map[string][]string{
			"mslug":  {"201-p1.p2"},
			"mslugx": {"201-p1.p2", "250-p1.p1"},
			"neogeo": {"sp-s2.sp1"},
		}},
		{hierarchy.MergeFullNonMerged, map[string][]string{
			"mslug":  {"201-p1.p2", "sp-s2.sp1"},
			"mslugx": {"201-p1.p2", "250-p1.p1", "sp-s2.sp1"},
		}},
		{hierarchy.MergeDeviceNonMerged, map[string][]string{
			"mslug":  {"201-p1.p2", "sp-s2.sp1"},
			"mslugx": {"201-p1.p2", "250-p1.p1", "sp-s2.sp1"},
			"neogeo": {"sp-s2.sp1"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.merge.String(), func(t *testing.T) {
			st := load(t, neogeo()...)
			require.NoError(t, hierarchy.Apply(st, tt.merge))

			got := make(map[string][]string)
			for _, key := range st.BucketKeys() {
				got[key] = names(st, key)
			}
			assert.Equal(t, tt.want, got)

			for _, m := range st.Machines() {
				assert.Empty(t, m.CloneOf(), m.Name())
				assert.Empty(t, m.RomOf(), m.Name())
			}
		})
	}
}

func TestApplyNoneKeepsTags(t *testing.T) {
	st := load(t, neogeo()...)
	require.NoError(t, hierarchy.Apply(st, hierarchy.MergeNone))
	assert.Equal(t, "mslug", machine(t, st, "mslugx").CloneOf())
	assert.Equal(t, 6, st.ItemCount())
}

func TestApplyUnknownMergeType(t *testing.T) {
	st := load(t, neogeo()...)
	assert.Error(t, hierarchy.Apply(st, hierarchy.MergeType(42)))
}

func TestParseMergeType(t *testing.T) {
	tests := []struct {
		in   string
		want hierarchy.MergeType
	}{
		{"", hierarchy.MergeNone},
		{"split", hierarchy.MergeSplit},
		{"Merged", hierarchy.MergeMerged},
		{"non-merged", hierarchy.MergeNonMerged},
		{"full", hierarchy.MergeFullNonMerged},
		{"fullnonmerged", hierarchy.MergeFullNonMerged},
		{"device-non-merged", hierarchy.MergeDeviceNonMerged},
	}
	for _, tt := range tests {
		got, err := hierarchy.ParseMergeType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := hierarchy.ParseMergeType("bogus")
	assert.Error(t, err)

	var m hierarchy.MergeType
	require.NoError(t, m.UnmarshalText([]byte("split")))
	assert.Equal(t, hierarchy.MergeSplit, m)
}
