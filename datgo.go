package datgo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/datgo/blobstore"
	"github.com/hupe1980/datgo/config"
	"github.com/hupe1980/datgo/field"
	"github.com/hupe1980/datgo/filter"
	"github.com/hupe1980/datgo/hashing"
	"github.com/hupe1980/datgo/hierarchy"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/resource"
	"github.com/hupe1980/datgo/snapshot"
	"github.com/hupe1980/datgo/stats"
	"github.com/hupe1980/datgo/store"
)

// DatFile is one DAT: its item store plus the options it is processed with.
// A DatFile is not safe for concurrent use.
type DatFile struct {
	name        string
	st          *store.Store
	opts        options
	logger      *Logger
	rc          *resource.Controller
	compression snapshot.Compression
}

// Report summarizes one Apply run.
type Report struct {
	Dat        string
	MergeType  hierarchy.MergeType
	Renamed    int // machines renamed to their description
	SceneDates int // names stripped of a scene date prefix
	Filtered   int // items marked by filters
	Regions    int // machines dropped by one-game-per-region
	SplitRoms  int // items moved into their own machine
	Removed    int // marked items swept
	Duplicates int // items removed by deduplication
	Stats      *stats.DatStatistics
	Elapsed    time.Duration
}

// New creates an empty DAT.
func New(name string, optFns ...Option) *DatFile {
	o := applyOptions(optFns)
	st := store.New(store.WithLowercaseKeys(o.lowercaseKeys), store.WithNoRename(o.noRename))
	return newDatFile(name, st, o)
}

func newDatFile(name string, st *store.Store, o options) *DatFile {
	d := &DatFile{
		name:        name,
		st:          st,
		opts:        o,
		logger:      o.logger.WithDat(name),
		compression: o.compression,
	}
	if o.limits != nil {
		d.rc = resource.NewController(*o.limits)
	}
	return d
}

// Open loads a DAT from a snapshot.
func Open(ctx context.Context, bs blobstore.BlobStore, name string, optFns ...Option) (*DatFile, error) {
	o := applyOptions(optFns)
	d := newDatFile(name, store.New(), o)

	start := time.Now()
	st, err := snapshot.Load(ctx, bs, name, snapshot.WithController(d.rc))
	o.metricsCollector.RecordSnapshot(0, time.Since(start), err)
	d.logger.LogSnapshot(ctx, "loaded", name, 0, err)
	if err != nil {
		return nil, translateError(err)
	}

	d.st = st
	return d, nil
}

// Name returns the DAT name.
func (d *DatFile) Name() string {
	return d.name
}

// Store returns the underlying item store.
func (d *DatFile) Store() *store.Store {
	return d.st
}

// Statistics returns the current statistics.
func (d *DatFile) Statistics() *stats.DatStatistics {
	return d.st.Statistics()
}

// AddFile hashes r and adds it as a rom named name.
func (d *DatFile) AddFile(machineID model.MachineID, sourceID model.SourceID, name string, r io.Reader) (model.ItemID, error) {
	info, err := hashing.Compute(r)
	if err != nil {
		return model.NoID, err
	}

	item := model.NewItem(model.TypeRom, field.Document{
		model.KeyName: field.String(name),
		model.KeySize: field.Int(info.Size),
	})
	for t, v := range info.Hashes {
		item.SetHash(t, v)
	}

	id, err := d.st.AddItem(item, machineID, sourceID, false)
	return id, translateError(err)
}

// Apply runs a profile: rebuild the set variant, filter and clean, sweep
// marked items, deduplicate and recompute statistics. A nil profile means
// config.Default().
func (d *DatFile) Apply(ctx context.Context, p *config.Profile) (*Report, error) {
	if p == nil {
		def := config.Default()
		p = &def
	}

	runner, err := p.Runner()
	if err != nil {
		return nil, translateError(err)
	}
	if err := d.reconfigure(p); err != nil {
		return nil, translateError(err)
	}

	start := time.Now()
	report := &Report{Dat: d.name, MergeType: p.MergeType}

	if err := d.split(ctx, p.MergeType); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := d.clean(ctx, p, runner, report); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if key := p.DedupItemKey(); key != store.KeyNone {
		dedupStart := time.Now()
		d.st.BucketBy(key)
		report.Duplicates = d.st.Deduplicate()
		d.st.BucketBy(store.KeyMachine)
		d.opts.metricsCollector.RecordDeduplicate(report.Duplicates, time.Since(dedupStart))
		d.logger.LogDeduplicate(ctx, key.String(), report.Duplicates)
	}

	d.st.RecalculateStats()
	report.Stats = d.st.Statistics().Clone()
	report.Elapsed = time.Since(start)

	d.logger.InfoContext(ctx, "profile applied",
		"profile", p.Name,
		"merge_type", p.MergeType.String(),
		"items", report.Stats.TotalItems(),
		"removed", report.Removed+report.Duplicates,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

// reconfigure rebuilds the store when the profile asks for key options the
// store was not created with.
func (d *DatFile) reconfigure(p *config.Profile) error {
	if !d.opts.compressionSet {
		d.compression = p.SnapshotCompression()
	}

	state := d.st.State()
	lowercase := state.Lowercase || p.LowercaseKeys
	noRename := state.NoRename || p.NoRename
	if lowercase == state.Lowercase && noRename == state.NoRename {
		return nil
	}

	state.Lowercase = lowercase
	state.NoRename = noRename
	st, err := store.FromState(state)
	if err != nil {
		return err
	}
	d.st = st
	return nil
}

func (d *DatFile) split(ctx context.Context, m hierarchy.MergeType) error {
	start := time.Now()
	d.st.BucketBy(store.KeyMachine)
	err := hierarchy.Apply(d.st, m)
	d.opts.metricsCollector.RecordSplit(time.Since(start), err)
	d.logger.LogSplit(ctx, m.String(), d.st.ItemCount(), time.Since(start), err)
	return translateError(err)
}

func (d *DatFile) clean(ctx context.Context, p *config.Profile, runner *filter.Runner, report *Report) error {
	start := time.Now()

	if p.DescriptionAsName {
		report.Renamed = filter.MachineDescriptionToName(d.st)
		d.st.BucketBy(store.KeyMachine)
	}
	if p.StripSceneDates {
		report.SceneDates = filter.StripSceneDatesFromItems(d.st)
	}

	report.Filtered = filter.Execute(d.st, runner)

	var err error
	if p.OneGamePerRegion {
		if report.Regions, err = filter.SetOneGamePerRegion(d.st, p.Regions); err != nil {
			return translateError(fmt.Errorf("one game per region: %w", err))
		}
	}
	if p.OneRomPerGame {
		if report.SplitRoms, err = filter.SetOneRomPerGame(d.st); err != nil {
			return translateError(fmt.Errorf("one rom per game: %w", err))
		}
	}

	report.Removed = d.st.ClearMarked()
	d.opts.metricsCollector.RecordFilter(report.Removed, time.Since(start))
	d.logger.LogFilter(ctx, runner.Len(), report.Filtered, report.Removed)
	return nil
}

// Save writes the DAT as a snapshot and returns the bytes written.
func (d *DatFile) Save(ctx context.Context, bs blobstore.BlobStore, name string) (int64, error) {
	start := time.Now()
	n, err := snapshot.Save(ctx, bs, name, d.st,
		snapshot.WithCodec(d.opts.codec),
		snapshot.WithCompression(d.compression),
		snapshot.WithController(d.rc),
	)
	d.opts.metricsCollector.RecordSnapshot(n, time.Since(start), err)
	d.logger.LogSnapshot(ctx, "saved", name, n, err)
	return n, translateError(err)
}
