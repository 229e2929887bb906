package operation

import (
	"fmt"
	"log/slog"
	"time"

	"microplate/pkg/observability"
	"microplate/pkg/validation"
)

// Option configures an operator.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder observability.Recorder
}

// WithLogger sets the logger. Successful calls log at debug level and
// failures at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r observability.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   observability.DiscardLogger(),
		recorder: observability.NopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// track records one call. It is deferred by every entry point with a pointer
// to the named error result.
func (o options) track(operation, mode, level string, start time.Time, errp *error) {
	d := time.Since(start)
	var err error
	if errp != nil {
		err = *errp
	}
	o.recorder.Observe(operation, level, err == nil, d)
	if err != nil {
		o.logger.Warn("operation failed",
			"operation", operation, "mode", mode, "level", level, "error", err)
		return
	}
	o.logger.Debug("operation applied",
		"operation", operation, "mode", mode, "level", level, "duration", d)
}

// Range restricts an operation to the [Begin,End) window of every sequence.
// The result holds only the window.
type Range struct {
	Begin int
	End   int
}

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Begin, r.End) }

func resolveWindow(operation string, window []Range) (*Range, error) {
	switch len(window) {
	case 0:
		return nil, nil
	case 1:
		r := window[0]
		if err := validation.ValidateRange(r.Begin, r.End); err != nil {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		return &r, nil
	default:
		args := make([]any, len(window))
		for i, r := range window {
			args[i] = r
		}
		return nil, validation.NewArgumentShapeError(operation, args, []string{"no range", "one [begin,end) range"})
	}
}
