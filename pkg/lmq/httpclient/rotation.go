package httpclient

import (
	"context"
	"errors"
	"fmt"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	lmq "github.com/mutablelogic/go-lmq"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CircleGet rotates over entries, starting after the entry at cursor and
// skipping inactive entries, and performs a get on the queue and host of
// each entry until one succeeds. It returns the index of that entry, which
// can be passed as the cursor of the next call. A cursor of -1 starts with
// the first entry. On failure the index of the last entry attempted is
// returned with a RotationError.
func (c *Client) CircleGet(ctx context.Context, entries []schema.RotationEntry, cursor int) (_ int, _ *schema.Message, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName("circle."+schema.PathGet),
		attribute.Int("entries", len(entries)),
		attribute.Int("cursor", cursor),
	)
	defer func() { endspan(err) }()

	return circle(ctx, c, entries, cursor, func(ctx context.Context, entry schema.RotationEntry) (*schema.Message, error) {
		return c.get(ctx, entry.Host, entry.Queue)
	})
}

// CircleFetch is like CircleGet but performs a fetch on each entry.
func (c *Client) CircleFetch(ctx context.Context, entries []schema.RotationEntry, cursor int) (_ int, _ *schema.Content, err error) {
	ctx, endspan := otel.StartSpan(c.tracer, ctx, spanName("circle."+schema.PathFetch),
		attribute.Int("entries", len(entries)),
		attribute.Int("cursor", cursor),
	)
	defer func() { endspan(err) }()

	return circle(ctx, c, entries, cursor, func(ctx context.Context, entry schema.RotationEntry) (*schema.Content, error) {
		return c.fetch(ctx, entry.Host, entry.Queue)
	})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// roundRobin attempts fn on each host in rotation order, moving the
// client cursor to each host before it is attempted.
func roundRobin[T any](ctx context.Context, c *Client, fn func(context.Context, int) (T, error)) (T, error) {
	order, cursor := c.next(ctx)
	_, result, err := rotate(ctx, c, order, cursor, c.setCursor, fn, func(host int) int {
		return host
	})
	return result, err
}

// circle attempts fn on each active entry in rotation order
func circle[T any](ctx context.Context, c *Client, entries []schema.RotationEntry, cursor int, fn func(context.Context, schema.RotationEntry) (T, error)) (int, T, error) {
	var zero T

	// Check parameters
	if cursor < -1 || cursor >= len(entries) {
		return cursor, zero, lmq.ErrBadParameter.Withf("cursor %d out of range", cursor)
	}
	for i, entry := range entries {
		if entry.Active && (entry.Host < 0 || entry.Host >= len(c.hosts)) {
			return cursor, zero, lmq.ErrBadParameter.Withf("entry %d: host index %d out of range", i, entry.Host)
		}
	}
	order := lmq.RotationFunc(cursor, len(entries), schema.RotationList(entries).IsActive)
	if len(order) == 0 {
		return cursor, zero, lmq.ErrBadParameter.With("no active entries")
	}

	// Rotate over entries
	return rotate(ctx, c, order, cursor, nil, func(ctx context.Context, index int) (T, error) {
		return fn(ctx, entries[index])
	}, func(index int) int {
		return entries[index].Host
	})
}

// rotate attempts fn for each index in order until one succeeds, calling
// store (if not nil) with each index before it is attempted. It returns
// the index attempted last, or cursor when nothing was attempted. The host
// function maps an index to a host. A cancelled context stops the rotation
// with a TransportError wrapping the context error.
func rotate[T any](ctx context.Context, c *Client, order []int, cursor int, store func(int), fn func(context.Context, int) (T, error), host func(int) int) (int, T, error) {
	var zero T
	var errs []error

	last := cursor
	for _, index := range order {
		if err := ctx.Err(); err != nil {
			if len(errs) == 0 || !errors.Is(errs[len(errs)-1], err) {
				errs = append(errs, &TransportError{Host: host(index), Err: err})
			}
			break
		}
		if store != nil {
			store(index)
		}
		last = index

		result, err := fn(ctx, index)
		if err == nil {
			return index, result, nil
		}
		errs = append(errs, err)

		// Log the failure
		if c.log != nil {
			c.log.With("host", c.hosts[host(index)]).Debug(ctx, fmt.Sprint("rotation attempt failed: ", err))
		}
	}

	// Return the last error
	return last, zero, &RotationError{Errors: errs}
}
