package distcache

import (
	"math"

	"github.com/hupe1980/distcache/knn"
	"github.com/hupe1980/distcache/matrix"
)

type options struct {
	logger            *Logger
	matrixMagic       uint32
	knnMagic          uint32
	undefinedDistance float64
}

func defaultOptions() options {
	return options{
		logger:            NoopLogger(),
		matrixMagic:       matrix.DoubleDistanceMagic,
		knnMagic:          knn.CacheMagic,
		undefinedDistance: math.NaN(),
	}
}

// Option configures constructor behavior.
type Option func(*options)

// WithLogger sets the logger for diagnostics and load events.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMatrixMagic overrides the expected matrix file magic number.
// Use this when a matrix is declared for a purpose other than plain
// double distances.
func WithMatrixMagic(magic uint32) Option {
	return func(o *options) {
		o.matrixMagic = magic
	}
}

// WithKNNMagic overrides the expected kNN cache file magic number.
func WithKNNMagic(magic uint32) Option {
	return func(o *options) {
		o.knnMagic = magic
	}
}

// WithUndefinedDistance sets the value returned when either id of a
// distance lookup is the Undefined sentinel. Defaults to NaN.
func WithUndefinedDistance(d float64) Option {
	return func(o *options) {
		o.undefinedDistance = d
	}
}
