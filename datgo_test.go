package datgo_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datgo"
	"github.com/hupe1980/datgo/blobstore"
	"github.com/hupe1980/datgo/config"
	"github.com/hupe1980/datgo/hashing"
	"github.com/hupe1980/datgo/hierarchy"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/resource"
	"github.com/hupe1980/datgo/snapshot"
	"github.com/hupe1980/datgo/store"
	"github.com/hupe1980/datgo/testutil"
)

func arcadeDat(t *testing.T, name string, optFns ...datgo.Option) *datgo.DatFile {
	t.Helper()
	dat := datgo.New(name, optFns...)
	st := dat.Store()
	src := st.AddSource(model.NewSource(0, name))
	testutil.Load(st, src,
		testutil.Set(testutil.Machine("pacman", ""),
			testutil.Rom("pacman.6e", "11111111"),
			testutil.Rom("pacman.6f", "22222222")),
		testutil.Set(testutil.Machine("puckman", "pacman"),
			testutil.Rom("pacman.6e", "11111111"),
			testutil.Rom("pacman.6f", "22222222"),
			testutil.Rom("pm.7f", "33333333")),
		testutil.Set(testutil.Machine("galaga", ""),
			testutil.Rom("gg1", "44444444"),
			testutil.Rom("gg2", "11111111"),
			testutil.Rom("bad", "")),
	)
	return dat
}

func itemsByMachine(st *store.Store) map[string][]string {
	out := make(map[string][]string)
	for id, item := range st.Items() {
		m, _ := st.GetMachineForItem(id)
		out[m.Name()] = append(out[m.Name()], item.Name())
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

func splitProfile() *config.Profile {
	p := config.Default()
	p.MergeType = hierarchy.MergeSplit
	p.Filters = []string{"rom.status!=nodump"}
	p.Dedup = config.DedupFull
	p.DedupKey = "crc"
	return &p
}

func TestApplyPipeline(t *testing.T) {
	metrics := &datgo.BasicMetricsCollector{}
	dat := arcadeDat(t, "arcade.dat", datgo.WithMetricsCollector(metrics))

	report, err := dat.Apply(context.Background(), splitProfile())
	require.NoError(t, err)

	assert.Equal(t, hierarchy.MergeSplit, report.MergeType)
	assert.Equal(t, 1, report.Filtered)
	assert.Equal(t, 1, report.Removed)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, int64(4), report.Stats.TotalItems())

	assert.Equal(t, map[string][]string{
		"pacman":  {"pacman.6e", "pacman.6f"},
		"puckman": {"pm.7f"},
		"galaga":  {"gg1"},
	}, itemsByMachine(dat.Store()))

	assert.Equal(t, store.KeyMachine, dat.Store().BucketedBy())
	assert.Equal(t, 0, dat.Store().MarkedCount())

	m := metrics.GetStats()
	assert.Equal(t, int64(1), m.SplitCount)
	assert.Equal(t, int64(1), m.FilterRemoved)
	assert.Equal(t, int64(1), m.DedupRemoved)
}

func TestApplyDefaultProfileKeepsEverything(t *testing.T) {
	dat := arcadeDat(t, "arcade.dat")

	report, err := dat.Apply(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Removed)
	assert.Equal(t, 0, report.Duplicates)
	assert.Equal(t, int64(8), report.Stats.TotalItems())
	assert.Equal(t, "pacman", func() string {
		for _, m := range dat.Store().Machines() {
			if m.Name() == "puckman" {
				return m.CloneOf()
			}
		}
		return ""
	}())
}

func TestApplyInvalidProfile(t *testing.T) {
	dat := arcadeDat(t, "arcade.dat")
	p := config.Default()
	p.Filters = []string{"rom.crc"}

	_, err := dat.Apply(context.Background(), &p)
	assert.ErrorIs(t, err, datgo.ErrInvalidArgument)
}

func TestApplyLowercaseKeysFromProfile(t *testing.T) {
	dat := datgo.New("case.dat")
	st := dat.Store()
	src := st.AddSource(model.NewSource(0, "case.dat"))
	testutil.Load(st, src, testutil.Set(testutil.Machine("PacMan", ""), testutil.Rom("a", "11111111")))

	p := config.Default()
	p.LowercaseKeys = true

	_, err := dat.Apply(context.Background(), &p)
	require.NoError(t, err)
	assert.Equal(t, []string{"0000000000-pacman"}, dat.Store().BucketKeys())
}

func TestApplyCanceled(t *testing.T) {
	dat := arcadeDat(t, "arcade.dat")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dat.Apply(ctx, splitProfile())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddFile(t *testing.T) {
	dat := datgo.New("files.dat")
	st := dat.Store()
	src := st.AddSource(model.NewSource(0, "files.dat"))
	mid := st.AddMachine(model.NewMachine("demo", "Demo"))

	id, err := dat.AddFile(mid, src, "hello.bin", strings.NewReader("hello"))
	require.NoError(t, err)

	item, ok := st.GetItem(id)
	require.True(t, ok)
	assert.Equal(t, "3610a686", item.Hash(hashing.CRC))
	size, ok := item.Size()
	require.True(t, ok)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, model.StatusNone, item.Status())

	_, err = dat.AddFile(99, src, "x", strings.NewReader(""))
	assert.ErrorIs(t, err, datgo.ErrNotFound)
}

func TestSaveOpen(t *testing.T) {
	ctx := context.Background()
	bs := blobstore.NewMemoryStore()
	metrics := &datgo.BasicMetricsCollector{}

	dat := arcadeDat(t, "arcade.dat", datgo.WithMetricsCollector(metrics), datgo.WithCompression(snapshot.CompressionLZ4))
	_, err := dat.Apply(ctx, splitProfile())
	require.NoError(t, err)

	n, err := dat.Save(ctx, bs, "arcade.dats")
	require.NoError(t, err)
	assert.Positive(t, n)

	h, err := snapshot.ReadHeader(ctx, bs, "arcade.dats")
	require.NoError(t, err)
	assert.Equal(t, snapshot.CompressionLZ4, h.Compression)

	reopened, err := datgo.Open(ctx, bs, "arcade.dats", datgo.WithMetricsCollector(metrics))
	require.NoError(t, err)
	assert.Equal(t, itemsByMachine(dat.Store()), itemsByMachine(reopened.Store()))
	assert.Equal(t, dat.Statistics().TotalItems(), reopened.Statistics().TotalItems())
	assert.Equal(t, int64(2), metrics.GetStats().SnapshotCount)

	_, err = datgo.Open(ctx, bs, "missing.dats")
	assert.ErrorIs(t, err, datgo.ErrNotFound)
}

func TestSaveUsesProfileCompression(t *testing.T) {
	ctx := context.Background()
	bs := blobstore.NewMemoryStore()

	dat := arcadeDat(t, "arcade.dat")
	p := splitProfile()
	p.Compression = "zstd"
	_, err := dat.Apply(ctx, p)
	require.NoError(t, err)

	_, err = dat.Save(ctx, bs, "arcade.dats")
	require.NoError(t, err)

	h, err := snapshot.ReadHeader(ctx, bs, "arcade.dats")
	require.NoError(t, err)
	assert.Equal(t, snapshot.CompressionZSTD, h.Compression)
}

func TestProcessAll(t *testing.T) {
	dats := []*datgo.DatFile{
		arcadeDat(t, "a.dat"),
		arcadeDat(t, "b.dat"),
		arcadeDat(t, "c.dat"),
	}

	batch, err := datgo.ProcessAll(context.Background(), dats, splitProfile(),
		datgo.WithResourceLimits(resource.Config{MaxWorkers: 2}))
	require.NoError(t, err)

	require.Len(t, batch.Reports, 3)
	for i, r := range batch.Reports {
		assert.Equal(t, dats[i].Name(), r.Dat)
	}
	assert.Equal(t, int64(12), batch.Stats.TotalItems())
	assert.Equal(t, int64(9), batch.Stats.MachineCount)
}

func TestProcessAllFailure(t *testing.T) {
	p := config.Default()
	p.Filters = []string{"nonsense"}

	_, err := datgo.ProcessAll(context.Background(), []*datgo.DatFile{arcadeDat(t, "a.dat")}, &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, datgo.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "a.dat")
}

func TestProcessAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := datgo.ProcessAll(ctx, []*datgo.DatFile{arcadeDat(t, "a.dat")}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
