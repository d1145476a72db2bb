package pxsort

import "log/slog"

// Option configures a Segmentation.
//
// Example:
//
//	s := pxsort.NewSegmentation(buf, segs, pxsort.WithWorkers(runtime.NumCPU()))
type Option func(*options)

type options struct {
	workers int
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		workers: 1, // sequential and bit-reproducible
		logger:  nil,
	}
}

// WithWorkers sets the number of goroutines a tick may use. Values of 1 or
// less run every unit sequentially on the calling goroutine. Larger values
// start a bounded worker pool that lives until Close.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets a logger for one segmentation, overriding the package
// logger installed by SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
