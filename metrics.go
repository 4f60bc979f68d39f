package datgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSplit is called after a set-variant rebuild.
	RecordSplit(duration time.Duration, err error)

	// RecordFilter is called after filters and cleaning ops ran.
	// removed is the number of items swept.
	RecordFilter(removed int, duration time.Duration)

	// RecordDeduplicate is called after a deduplication pass.
	RecordDeduplicate(removed int, duration time.Duration)

	// RecordSnapshot is called after each snapshot save or load.
	RecordSnapshot(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSplit(time.Duration, error)           {}
func (NoopMetricsCollector) RecordFilter(int, time.Duration)            {}
func (NoopMetricsCollector) RecordDeduplicate(int, time.Duration)       {}
func (NoopMetricsCollector) RecordSnapshot(int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	SplitCount       atomic.Int64
	SplitErrors      atomic.Int64
	SplitTotalNanos  atomic.Int64
	FilterCount      atomic.Int64
	FilterRemoved    atomic.Int64
	DedupCount       atomic.Int64
	DedupRemoved     atomic.Int64
	SnapshotCount    atomic.Int64
	SnapshotErrors   atomic.Int64
	SnapshotBytes    atomic.Int64
	SnapshotDuration atomic.Int64
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(duration time.Duration, err error) {
	b.SplitCount.Add(1)
	b.SplitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SplitErrors.Add(1)
	}
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(removed int, _ time.Duration) {
	b.FilterCount.Add(1)
	b.FilterRemoved.Add(int64(removed))
}

// RecordDeduplicate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDeduplicate(removed int, _ time.Duration) {
	b.DedupCount.Add(1)
	b.DedupRemoved.Add(int64(removed))
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(bytes int64, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotDuration.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SplitCount:     b.SplitCount.Load(),
		SplitErrors:    b.SplitErrors.Load(),
		SplitAvgNanos:  avg(b.SplitTotalNanos.Load(), b.SplitCount.Load()),
		FilterCount:    b.FilterCount.Load(),
		FilterRemoved:  b.FilterRemoved.Load(),
		DedupCount:     b.DedupCount.Load(),
		DedupRemoved:   b.DedupRemoved.Load(),
		SnapshotCount:  b.SnapshotCount.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
		SnapshotBytes:  b.SnapshotBytes.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SplitCount     int64
	SplitErrors    int64
	SplitAvgNanos  int64
	FilterCount    int64
	FilterRemoved  int64
	DedupCount     int64
	DedupRemoved   int64
	SnapshotCount  int64
	SnapshotErrors int64
	SnapshotBytes  int64
}
