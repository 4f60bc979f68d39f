package datgo

import (
	"log/slog"
	"os"

	"github.com/hupe1980/datgo/codec"
	"github.com/hupe1980/datgo/resource"
	"github.com/hupe1980/datgo/snapshot"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	lowercaseKeys    bool
	noRename         bool
	limits           *resource.Config
	codec            codec.Codec
	compression      snapshot.Compression
	compressionSet   bool
}

// Option configures New, Open and ProcessAll.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		codec:            codec.Default,
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel replaces the logger with a text logger to stderr at level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example:
//
//	metrics := &datgo.BasicMetricsCollector{}
//	dat := datgo.New("mame.dat", datgo.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLowercaseKeys folds bucket keys to lower case.
func WithLowercaseKeys(v bool) Option {
	return func(o *options) { o.lowercaseKeys = v }
}

// WithNoRename drops the source prefix from machine bucket keys.
func WithNoRename(v bool) Option {
	return func(o *options) { o.noRename = v }
}

// WithResourceLimits bounds batch workers, snapshot memory and snapshot IO.
func WithResourceLimits(cfg resource.Config) Option {
	return func(o *options) { o.limits = &cfg }
}

// WithCodec sets the snapshot payload codec. If nil, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets snapshot compression. It overrides the profile's
// compression setting.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
		o.compressionSet = true
	}
}
