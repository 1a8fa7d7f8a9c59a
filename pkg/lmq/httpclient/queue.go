package httpclient

import (
	"context"
	"strconv"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Help returns the help text of a host (GET /help).
func (c *Client) Help(ctx context.Context, opts ...Opt) (_ string, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathHelp))
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return "", err
	}

	// Perform request
	response, err := c.do(ctx, host, schema.PathHelp)
	if err != nil {
		return "", err
	}

	// Return the response
	return string(response.Body()), nil
}

// Version returns the version string of a host (GET /version).
func (c *Client) Version(ctx context.Context, opts ...Opt) (_ string, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathVersion))
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return "", err
	}

	// Perform request
	response, err := c.do(ctx, host, schema.PathVersion)
	if err != nil {
		return "", err
	}

	// Return the response
	return strings.TrimSpace(string(response.Body())), nil
}

// List returns the text listing of queues on a host (GET /list).
func (c *Client) List(ctx context.Context, opts ...Opt) (_ string, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathList))
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return "", err
	}

	// Perform request
	response, err := c.do(ctx, host, schema.PathList)
	if err != nil {
		return "", err
	}

	// Return the response
	return string(response.Body()), nil
}

// ListQueues returns the queue names on a host, parsed from the listing.
func (c *Client) ListQueues(ctx context.Context, opts ...Opt) (schema.QueueList, error) {
	text, err := c.List(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return schema.ParseQueueList(text), nil
}

// Count returns the number of messages in a queue (GET /count/{queue}).
// A body which is not a decimal integer results in a DecodeError.
func (c *Client) Count(ctx context.Context, queue string, opts ...Opt) (_ uint64, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathCount),
		attribute.String("queue", queue),
	)
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return 0, err
	}

	// Perform request
	response, err := c.do(ctx, host, schema.PathCount, queue)
	if err != nil {
		return 0, err
	}

	// Decode the count
	body := string(response.Body())
	count, err := strconv.ParseUint(strings.TrimSpace(body), 10, 64)
	if err != nil {
		return 0, &DecodeError{Host: host, Body: body, Err: err}
	}

	// Return the response
	return count, nil
}

// Skip moves number messages from the head to the tail of a queue
// (GET /skip/{queue}/{number}).
func (c *Client) Skip(ctx context.Context, queue string, number uint64, opts ...Opt) (err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathSkip),
		attribute.String("queue", queue),
		attribute.Int64("number", int64(number)),
	)
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return err
	}

	// Perform request
	_, err = c.do(ctx, host, schema.PathSkip, queue, strconv.FormatUint(number, 10))
	return err
}

// Set appends a message to a queue, creating the queue if it does not
// exist (GET /set/{queue}/{message}). A message of the form "file:<path>"
// references a file on the server.
func (c *Client) Set(ctx context.Context, queue, message string, opts ...Opt) (err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathSet),
		attribute.String("queue", queue),
	)
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return err
	}

	// Perform request
	_, err = c.do(ctx, host, schema.PathSet, queue, message)
	return err
}

// Delete removes a queue and its messages (GET /delete/{queue}).
func (c *Client) Delete(ctx context.Context, queue string, opts ...Opt) (err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName(schema.PathDelete),
		attribute.String("queue", queue),
	)
	defer func() { endspan(err) }()

	host, err := c.selectHost(opts...)
	if err != nil {
		return err
	}

	// Perform request
	_, err = c.do(ctx, host, schema.PathDelete, queue)
	return err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) selectHost(opts ...Opt) (int, error) {
	o, err := applyOpts(opts...)
	if err != nil {
		return 0, err
	}
	return c.hostIndex(o)
}
