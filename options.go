package tabula

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/tabula/aggregate"
	"github.com/hupe1980/tabula/value"
)

type options struct {
	rowLabels    []value.Value
	hasRowLabels bool

	on, leftOn, rightOn          value.Value
	hasOn, hasLeftOn, hasRightOn bool
	how                          How
	suffixes                     [2]string

	varName   value.Value
	valueName value.Value

	aggregator aggregate.Func

	metricsCollector MetricsCollector
	logger           *Logger

	err error
}

// Option configures table construction and table operations.
//
// Options that do not apply to an operation are ignored by it. Tables keep
// the logger and metrics collector they were built with and hand them on
// to every table derived from them.
type Option func(*options)

// WithRowLabels sets explicit row labels. The default is 0..n-1.
// Labels that value.FromAny cannot convert make construction fail.
func WithRowLabels(labels ...any) Option {
	return func(o *options) {
		vals, err := value.FromSlice(labels)
		if err != nil {
			o.err = fmt.Errorf("row labels: %w", err)
			return
		}
		o.rowLabels = vals
		o.hasRowLabels = true
	}
}

// withRowLabelValues is WithRowLabels for labels that are already Values.
func withRowLabelValues(labels []value.Value) Option {
	return func(o *options) {
		o.rowLabels = labels
		o.hasRowLabels = true
	}
}

// On sets the join column used on both sides of a merge.
func On(label any) Option {
	return func(o *options) {
		v, err := value.FromAny(label)
		if err != nil {
			o.err = joinSpecErrorf(err, "On: %v", err)
			return
		}
		o.on = v
		o.hasOn = true
	}
}

// LeftOn sets the join column of the left table. It requires RightOn.
func LeftOn(label any) Option {
	return func(o *options) {
		v, err := value.FromAny(label)
		if err != nil {
			o.err = joinSpecErrorf(err, "LeftOn: %v", err)
			return
		}
		o.leftOn = v
		o.hasLeftOn = true
	}
}

// RightOn sets the join column of the right table. It requires LeftOn.
func RightOn(label any) Option {
	return func(o *options) {
		v, err := value.FromAny(label)
		if err != nil {
			o.err = joinSpecErrorf(err, "RightOn: %v", err)
			return
		}
		o.rightOn = v
		o.hasRightOn = true
	}
}

// WithHow sets the join type. The default is Inner.
func WithHow(how How) Option {
	return func(o *options) {
		o.how = how
	}
}

// WithSuffixes sets the suffixes appended to colliding non-key column
// names. The default is "_x" and "_y".
func WithSuffixes(left, right string) Option {
	return func(o *options) {
		o.suffixes = [2]string{left, right}
	}
}

// WithVarName sets the name of the melt column holding former column
// labels. The default is "variable".
func WithVarName(name any) Option {
	return func(o *options) {
		v, err := value.FromAny(name)
		if err != nil {
			o.err = fmt.Errorf("var name: %w", err)
			return
		}
		o.varName = v
	}
}

// WithValueName sets the name of the melt column holding cell values. The
// default is "value".
func WithValueName(name any) Option {
	return func(o *options) {
		v, err := value.FromAny(name)
		if err != nil {
			o.err = fmt.Errorf("value name: %w", err)
			return
		}
		o.valueName = v
	}
}

// WithAggregator sets the pivot aggregation. The default is aggregate.Mean.
func WithAggregator(fn aggregate.Func) Option {
	return func(o *options) {
		if fn == nil {
			fn = aggregate.Mean
		}
		o.aggregator = fn
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tabula.BasicMetricsCollector{}
//	t, _ := tabula.New(rows, cols, tabula.WithMetricsCollector(metrics))
//	// ... use t ...
//	stats := metrics.GetStats()
//	fmt.Printf("Merges: %d, Avg latency: %dns\n", stats.MergeCount, stats.MergeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tabula.NewJSONLogger(slog.LevelDebug)
//	merged, _ := tabula.Merge(left, right, tabula.On("id"), tabula.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func defaultOptions() options {
	return options{
		how:              Inner,
		suffixes:         [2]string{"_x", "_y"},
		varName:          value.String("variable"),
		valueName:        value.String("value"),
		aggregator:       aggregate.Mean,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// options returns the defaults seeded with the observers of t.
func (t *Table) options(optFns []Option) options {
	o := defaultOptions()
	o.logger = t.logger
	o.metricsCollector = t.metrics
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
