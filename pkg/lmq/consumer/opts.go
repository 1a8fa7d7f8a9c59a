package consumer

import (
	"runtime"
	"time"

	// Packages
	lmq "github.com/mutablelogic/go-lmq"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	server "github.com/mutablelogic/go-server"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for the consumer
type Opt func(*opts) error

type opts struct {
	workers int
	period  time.Duration
	fetch   bool
	log     server.Logger
	tracer  trace.Tracer
}

////////////////////////////////////////////////////////////////////////////////
// ERRORS

var (
	ErrInvalidWorkers = lmq.ErrBadParameter.With("workers must be >= 1")
	ErrInvalidPeriod  = lmq.ErrBadParameter.With("period must be >= 1ms")
)

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithWorkers sets the number of concurrent handlers.
// Returns ErrInvalidWorkers if n < 1.
func WithWorkers(n int) Opt {
	return func(o *opts) error {
		if n < 1 {
			return ErrInvalidWorkers
		}
		o.workers = n
		return nil
	}
}

// WithPeriod sets how long to wait before polling an empty queue again.
// Returns ErrInvalidPeriod if d < 1ms.
func WithPeriod(d time.Duration) Opt {
	return func(o *opts) error {
		if d < time.Millisecond {
			return ErrInvalidPeriod
		}
		o.period = d
		return nil
	}
}

// WithFetch reads messages with fetch instead of get, so handlers receive
// the content of file messages.
func WithFetch(fetch bool) Opt {
	return func(o *opts) error {
		o.fetch = fetch
		return nil
	}
}

// WithLogger logs poll and handler failures
func WithLogger(log server.Logger) Opt {
	return func(o *opts) error {
		o.log = log
		return nil
	}
}

// WithTracer emits a span for each message handled
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opt []Opt) (opts, error) {
	// Set defaults
	o := opts{
		workers: runtime.NumCPU(),
		period:  schema.PollPeriod,
	}

	// Apply options
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return opts{}, err
		}
	}

	// Return success
	return o, nil
}
