package httpclient

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get removes and returns the next message from a queue (GET /get/{queue}).
//
// When no host is pinned with WithHost, each host is tried in turn starting
// after the one used by the previous round-robin call, and the first
// message returned is annotated with the host which served it. If every
// host fails, a RotationError is returned whose view is the last failure.
func (c *Client) Get(ctx context.Context, queue string, opts ...Opt) (_ *schema.Message, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathGet),
		attribute.String("queue", queue),
	)
	defer func() { endspan(err) }()

	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Pinned host
	if o.host != nil {
		host, err := c.hostIndex(o)
		if err != nil {
			return nil, err
		}
		return c.get(ctx, host, queue)
	}

	// Round-robin across hosts
	return roundRobin(ctx, c, func(ctx context.Context, host int) (*schema.Message, error) {
		return c.get(ctx, host, queue)
	})
}

// Fetch removes the next message from a queue and returns it together with
// its content (GET /fetch/{queue}). For a file message the content is the
// file; otherwise it is the message text. Host selection follows Get.
func (c *Client) Fetch(ctx context.Context, queue string, opts ...Opt) (_ *schema.Content, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathFetch),
		attribute.String("queue", queue),
	)
	defer func() { endspan(err) }()

	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Pinned host
	if o.host != nil {
		host, err := c.hostIndex(o)
		if err != nil {
			return nil, err
		}
		return c.fetch(ctx, host, queue)
	}

	// Round-robin across hosts
	return roundRobin(ctx, c, func(ctx context.Context, host int) (*schema.Content, error) {
		return c.fetch(ctx, host, queue)
	})
}

// Download returns the content of a message without removing anything from
// a queue (GET /download/{message}).
func (c *Client) Download(ctx context.Context, message string, opts ...Opt) (_ []byte, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathDownload),
		attribute.String("message", message),
	)
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return nil, err
	}

	// Perform request
	response, err := c.do(ctx, host, schema.PathDownload, message)
	if err != nil {
		return nil, err
	}

	// Return the response
	return response.Body(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) get(ctx context.Context, host int, queue string) (*schema.Message, error) {
	response, err := c.do(ctx, host, schema.PathGet, queue)
	if err != nil {
		return nil, err
	}
	return schema.NewMessage(host, response.Header(), response.Body()), nil
}

func (c *Client) fetch(ctx context.Context, host int, queue string) (*schema.Content, error) {
	response, err := c.do(ctx, host, schema.PathFetch, queue)
	if err != nil {
		return nil, err
	}
	return schema.NewContent(host, response.Header(), response.Body()), nil
}
