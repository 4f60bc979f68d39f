package datgo

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/datgo/config"
	"github.com/hupe1980/datgo/resource"
	"github.com/hupe1980/datgo/stats"
)

// BatchReport summarizes a ProcessAll run.
type BatchReport struct {
	Reports []*Report
	Stats   *stats.DatStatistics // sum over all DATs
	Elapsed time.Duration
}

// ProcessAll applies p to every DAT in parallel. Each DAT is processed by
// one goroutine; the number running at once is bounded by
// WithResourceLimits (default GOMAXPROCS). The first failure cancels the
// rest.
func ProcessAll(ctx context.Context, dats []*DatFile, p *config.Profile, optFns ...Option) (*BatchReport, error) {
	o := applyOptions(optFns)
	limits := resource.Config{MaxWorkers: int64(runtime.GOMAXPROCS(0))}
	if o.limits != nil {
		limits = *o.limits
	}
	rc := resource.NewController(limits)

	start := time.Now()
	reports := make([]*Report, len(dats))
	g, gctx := errgroup.WithContext(ctx)

	for i, d := range dats {
		if err := rc.AcquireWorker(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer rc.ReleaseWorker()
			r, err := d.Apply(gctx, p)
			if err != nil {
				return fmt.Errorf("%s: %w", d.Name(), err)
			}
			reports[i] = r
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	batch := &BatchReport{Reports: reports, Stats: stats.New(), Elapsed: time.Since(start)}
	failed := 0
	for _, r := range reports {
		if r == nil {
			failed++
			continue
		}
		batch.Stats.Merge(r.Stats)
	}

	o.logger.LogBatch(ctx, len(dats), failed, batch.Stats.TotalItems(), batch.Elapsed)
	if err != nil {
		return nil, err
	}
	return batch, nil
}
