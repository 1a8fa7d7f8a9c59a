package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	// Packages
	resty "github.com/go-resty/resty/v2"
	lmq "github.com/mutablelogic/go-lmq"
	server "github.com/mutablelogic/go-server"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ClientOpt is an option applied when the client is created
type ClientOpt func(*Client) error

type opt struct {
	host *int
}

// Opt is an option to set on the client request.
type Opt func(*opt) error

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(opts ...Opt) (*opt, error) {
	o := new(opt)
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

////////////////////////////////////////////////////////////////////////////////
// CLIENT OPTIONS

// OptTimeout sets the timeout for each request. Zero disables the timeout.
func OptTimeout(value time.Duration) ClientOpt {
	return func(c *Client) error {
		if value < 0 {
			return lmq.ErrBadParameter.Withf("timeout %v", value)
		}
		c.client.SetTimeout(value)
		return nil
	}
}

// OptUserAgent sets the User-Agent header on every request.
func OptUserAgent(value string) ClientOpt {
	return func(c *Client) error {
		if value != "" {
			c.client.SetHeader("User-Agent", value)
		}
		return nil
	}
}

// OptTransport replaces the round tripper used for requests.
func OptTransport(value http.RoundTripper) ClientOpt {
	return func(c *Client) error {
		if value == nil {
			return lmq.ErrBadParameter.With("transport is nil")
		}
		c.client.SetTransport(value)
		return nil
	}
}

// OptTrace writes one line per request to w. When verbose is true the
// response body is written as well.
func OptTrace(w io.Writer, verbose bool) ClientOpt {
	return func(c *Client) error {
		if w == nil {
			return lmq.ErrBadParameter.With("trace writer is nil")
		}
		c.client.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
			fmt.Fprintln(w, r.Request.Method, r.Request.URL, "=>", r.Status())
			if verbose && len(r.Body()) > 0 {
				fmt.Fprintln(w, string(r.Body()))
			}
			return nil
		})
		c.client.OnError(func(r *resty.Request, err error) {
			fmt.Fprintln(w, r.Method, r.URL, "=>", err)
		})
		return nil
	}
}

// OptTracer emits an OpenTelemetry span for each operation.
func OptTracer(value trace.Tracer) ClientOpt {
	return func(c *Client) error {
		c.tracer = value
		return nil
	}
}

// OptLogger logs failed attempts during a rotation.
func OptLogger(value server.Logger) ClientOpt {
	return func(c *Client) error {
		c.log = value
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// REQUEST OPTIONS

// WithHost pins the request to the host at the given index. For get and
// fetch this disables the round-robin rotation.
func WithHost(index int) Opt {
	return func(o *opt) error {
		if index < 0 {
			return lmq.ErrBadParameter.Withf("host index %d", index)
		}
		o.host = &index
		return nil
	}
}
