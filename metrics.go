package tabula

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    mergeCounter      prometheus.Counter
//	    reshapeHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordMerge(how tabula.How, rows int, d time.Duration, err error) {
//	    p.mergeCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordMaterialize is called when a table builds its second form.
	// axis is the form that was built.
	RecordMaterialize(axis Axis, duration time.Duration)

	// RecordSort is called after each sort. rows is the table length.
	RecordSort(rows int, duration time.Duration, err error)

	// RecordMerge is called after each merge. rows is the result length.
	RecordMerge(how How, rows int, duration time.Duration, err error)

	// RecordReshape is called after melt, pivot and concat.
	RecordReshape(op string, rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMaterialize(Axis, time.Duration)           {}
func (NoopMetricsCollector) RecordSort(int, time.Duration, error)            {}
func (NoopMetricsCollector) RecordMerge(How, int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordReshape(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RowMaterializations    atomic.Int64
	ColumnMaterializations atomic.Int64
	MaterializeTotalNanos  atomic.Int64
	SortCount              atomic.Int64
	SortErrors             atomic.Int64
	MergeCount             atomic.Int64
	MergeErrors            atomic.Int64
	MergeRows              atomic.Int64
	MergeTotalNanos        atomic.Int64
	ReshapeCount           atomic.Int64
	ReshapeErrors          atomic.Int64
	ReshapeRows            atomic.Int64
}

// RecordMaterialize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMaterialize(axis Axis, duration time.Duration) {
	if axis == Rows {
		b.RowMaterializations.Add(1)
	} else {
		b.ColumnMaterializations.Add(1)
	}
	b.MaterializeTotalNanos.Add(duration.Nanoseconds())
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(rows int, duration time.Duration, err error) {
	b.SortCount.Add(1)
	if err != nil {
		b.SortErrors.Add(1)
	}
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(how How, rows int, duration time.Duration, err error) {
	b.MergeCount.Add(1)
	b.MergeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MergeErrors.Add(1)
		return
	}
	b.MergeRows.Add(int64(rows))
}

// RecordReshape implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReshape(op string, rows int, duration time.Duration, err error) {
	b.ReshapeCount.Add(1)
	if err != nil {
		b.ReshapeErrors.Add(1)
		return
	}
	b.ReshapeRows.Add(int64(rows))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RowMaterializations:    b.RowMaterializations.Load(),
		ColumnMaterializations: b.ColumnMaterializations.Load(),
		SortCount:              b.SortCount.Load(),
		SortErrors:             b.SortErrors.Load(),
		MergeCount:             b.MergeCount.Load(),
		MergeErrors:            b.MergeErrors.Load(),
		MergeRows:              b.MergeRows.Load(),
		MergeAvgNanos:          b.getAvgMergeNanos(),
		ReshapeCount:           b.ReshapeCount.Load(),
		ReshapeErrors:          b.ReshapeErrors.Load(),
		ReshapeRows:            b.ReshapeRows.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgMergeNanos() int64 {
	count := b.MergeCount.Load()
	if count == 0 {
		return 0
	}
	return b.MergeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RowMaterializations    int64
	ColumnMaterializations int64
	SortCount              int64
	SortErrors             int64
	MergeCount             int64
	MergeErrors            int64
	MergeRows              int64
	MergeAvgNanos          int64
	ReshapeCount           int64
	ReshapeErrors          int64
	ReshapeRows            int64
}
