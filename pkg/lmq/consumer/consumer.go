package consumer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	lmq "github.com/mutablelogic/go-lmq"
	httpclient "github.com/mutablelogic/go-lmq/pkg/lmq/httpclient"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Handler processes a message. For a consumer created WithFetch(true) the
// content of a file message is the file; otherwise Content holds the
// message text. A returned error is logged and the message is not retried.
type Handler func(context.Context, *schema.Content) error

// Consumer polls registered queues and dispatches messages to handlers
type Consumer struct {
	client *httpclient.Client
	opts   opts

	mu      sync.Mutex
	running bool
	queues  map[string]Handler
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a consumer reading through the given client
func New(client *httpclient.Client, opt ...Opt) (*Consumer, error) {
	if client == nil {
		return nil, lmq.ErrBadParameter.With("client is nil")
	}
	o, err := applyOpts(opt)
	if err != nil {
		return nil, err
	}
	return &Consumer{
		client: client,
		opts:   o,
		queues: make(map[string]Handler),
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterQueue sets the handler for a queue, replacing any existing one.
// Queues cannot be registered once Run has been called.
func (c *Consumer) RegisterQueue(queue string, handler Handler) error {
	if queue == "" {
		return lmq.ErrBadParameter.With("missing queue name")
	}
	if handler == nil {
		return lmq.ErrBadParameter.Withf("queue %q: handler is nil", queue)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return lmq.ErrBadParameter.Withf("queue %q: consumer is running", queue)
	}
	c.queues[queue] = handler
	return nil
}

// Queues returns the registered queue names, sorted
func (c *Consumer) Queues() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	queues := make([]string, 0, len(c.queues))
	for queue := range c.queues {
		queues = append(queues, queue)
	}
	sort.Strings(queues)
	return queues
}

// Run polls the registered queues until the context is cancelled, then
// waits for in-flight handlers to return. Handlers receive a context which
// is not cancelled with the one passed to Run.
func (c *Consumer) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return lmq.ErrBadParameter.With("consumer is already running")
	}
	if len(c.queues) == 0 {
		c.mu.Unlock()
		return lmq.ErrBadParameter.With("no queues registered")
	}
	c.running = true
	c.mu.Unlock()

	// Create work channel and spawn workers
	var workerWg sync.WaitGroup
	workCh := make(chan func(), c.opts.workers)
	for i := 0; i < c.opts.workers; i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for fn := range workCh {
				fn()
			}
		}()
	}

	// Poll until cancelled, then wait for workers
	c.pollLoop(ctx, workCh)
	close(workCh)
	workerWg.Wait()

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Consumer) pollLoop(ctx context.Context, workCh chan<- func()) {
	queues := c.Queues()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			for _, queue := range queues {
				c.drain(ctx, workCh, queue)
			}
			timer.Reset(c.opts.period)
		}
	}
}

// drain reads from a queue until it is empty, a read fails or the context
// is cancelled, dispatching each message to a worker
func (c *Consumer) drain(ctx context.Context, workCh chan<- func(), queue string) {
	c.mu.Lock()
	handler := c.queues[queue]
	c.mu.Unlock()

	for ctx.Err() == nil {
		content, err := c.next(ctx, queue)
		if err != nil {
			if !isEmpty(err) && ctx.Err() == nil && c.opts.log != nil {
				c.opts.log.With("queue", queue).Print(ctx, "poll error: ", err)
			}
			return
		}
		// The message is already off the server, so the handler runs to
		// completion even when polling is cancelled
		workCh <- func() {
			c.handle(context.WithoutCancel(ctx), queue, handler, content)
		}
	}
}

// next reads one message, as content
func (c *Consumer) next(ctx context.Context, queue string) (*schema.Content, error) {
	if c.opts.fetch {
		return c.client.Fetch(ctx, queue)
	}
	message, err := c.client.Get(ctx, queue)
	if err != nil {
		return nil, err
	}
	return &schema.Content{
		Host:    message.Host,
		Uid:     message.Uid,
		Message: &message.Message,
		Content: []byte(message.Message),
	}, nil
}

func (c *Consumer) handle(ctx context.Context, queue string, handler Handler, content *schema.Content) {
	var result error

	// Create the span
	child, endspan := otel.StartSpan(c.opts.tracer, ctx, "lmq.consumer."+queue,
		attribute.String("queue", queue),
		attribute.Int("host", content.Host),
	)
	defer func() { endspan(result) }()

	// Run the handler
	result = runWork(child, func(ctx context.Context) error {
		return handler(ctx, content)
	})
	if result != nil && c.opts.log != nil {
		log := c.opts.log.With("queue", queue).With("host", content.Host)
		if content.Uid != nil {
			log = log.With("uid", *content.Uid)
		}
		log.Print(ctx, "handler error: ", result)
	}
}

// runWork executes work with panic recovery
func runWork(ctx context.Context, fn func(context.Context) error) (errs error) {
	defer func() {
		if r := recover(); r != nil {
			errs = errors.Join(errs, fmt.Errorf("panic: %v", r))
		}
	}()
	return fn(ctx)
}

// isEmpty returns true when every host reported the queue as empty (410)
// or missing (404)
func isEmpty(err error) bool {
	var rotationErr *httpclient.RotationError
	if errors.As(err, &rotationErr) && len(rotationErr.Errors) > 0 {
		for _, err := range rotationErr.Errors {
			if !isEmptyStatus(err) {
				return false
			}
		}
		return true
	}
	return isEmptyStatus(err)
}

func isEmptyStatus(err error) bool {
	var protocolErr *httpclient.ProtocolError
	if errors.As(err, &protocolErr) {
		return protocolErr.StatusCode == http.StatusGone || protocolErr.StatusCode == http.StatusNotFound
	}
	return false
}
