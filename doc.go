// Package datgo processes ROM/DAT catalogs: it buckets items, rebuilds set
// variants (split, merged, non-merged), filters and cleans machines, removes
// duplicates and keeps statistics.
//
// # Quick Start
//
//	dat := datgo.New("mame.dat", datgo.WithLogger(datgo.NewTextLogger(slog.LevelInfo)))
//	st := dat.Store()
//	src := st.AddSource(model.NewSource(0, "mame.dat"))
//	mid := st.AddMachine(model.NewMachine("pacman", "Pac-Man"))
//	_, _ = st.AddItem(rom, mid, src, false)
//
//	profile, _ := config.Load("split.toml")
//	report, err := dat.Apply(ctx, profile)
//
// # Batches
//
// ProcessAll runs one profile over many DATs in parallel, bounded by
// WithResourceLimits, and merges their statistics:
//
//	batch, err := datgo.ProcessAll(ctx, dats, profile,
//	    datgo.WithResourceLimits(resource.Config{MaxWorkers: 4}))
//
// # Snapshots
//
// A processed DAT can be saved to any blobstore.BlobStore and reopened:
//
//	bs := blobstore.NewLocalStore("./snapshots")
//	_, err := dat.Save(ctx, bs, "mame.dats")
//	dat, err = datgo.Open(ctx, bs, "mame.dats")
package datgo
