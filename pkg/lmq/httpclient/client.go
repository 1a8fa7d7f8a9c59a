package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	// Packages
	resty "github.com/go-resty/resty/v2"
	lmq "github.com/mutablelogic/go-lmq"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
	server "github.com/mutablelogic/go-server"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client performs queue operations against one or more hosts. It is safe
// for concurrent use.
type Client struct {
	client *resty.Client
	hosts  []string
	tracer trace.Tracer
	log    server.Logger

	// Round-robin cursor, the index of the last host attempted
	mu     sync.Mutex
	cursor int
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client for the given hosts. Each host is a base URL
// such as "http://localhost:3000"; the first host is the default target.
func New(hosts []string, opts ...ClientOpt) (*Client, error) {
	self := new(Client)
	self.cursor = -1

	// Check hosts
	if len(hosts) == 0 {
		return nil, lmq.ErrBadParameter.With("no hosts")
	}
	self.hosts = make([]string, 0, len(hosts))
	for _, host := range hosts {
		if host, err := parseHost(host); err != nil {
			return nil, err
		} else {
			self.hosts = append(self.hosts, host)
		}
	}

	// Create the transport
	self.client = resty.New()
	self.client.SetTimeout(schema.DefaultTimeout)

	// Apply options
	for _, opt := range opts {
		if err := opt(self); err != nil {
			return nil, err
		}
	}

	// Return success
	return self, nil
}

// NewWithHost creates a new client for a single host.
func NewWithHost(host string, opts ...ClientOpt) (*Client, error) {
	return New([]string{host}, opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Hosts returns the base URLs of the hosts, in order.
func (c *Client) Hosts() []string {
	return slices.Clone(c.hosts)
}

// Cursor returns the index of the host last attempted by a round-robin
// operation, or -1 if there has been none.
func (c *Client) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// next returns the rotation order after the cursor, together with the
// cursor it was computed from, and moves the cursor to the first host in
// the order. The cursor is left alone when the context is already done.
func (c *Client) next(ctx context.Context) ([]int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cursor := c.cursor
	order := lmq.Rotation(cursor, len(c.hosts))
	if len(order) > 0 && ctx.Err() == nil {
		c.cursor = order[0]
	}
	return order, cursor
}

func (c *Client) setCursor(value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = value
}

// hostIndex returns the host selected by the request options, defaulting
// to the first host.
func (c *Client) hostIndex(o *opt) (int, error) {
	if o.host == nil {
		return 0, nil
	}
	if index := *o.host; index < 0 || index >= len(c.hosts) {
		return 0, lmq.ErrBadParameter.Withf("host index %d out of range", index)
	} else {
		return index, nil
	}
}

// do issues a GET request for {host}/{path...} and returns the response
// when the status is 200. Path segments are joined as-is and are not
// escaped.
func (c *Client) do(ctx context.Context, host int, path ...string) (*resty.Response, error) {
	endpoint := c.hosts[host] + "/" + strings.Join(path, "/")
	response, err := c.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, &TransportError{Host: host, Err: err}
	}
	if response.StatusCode() != http.StatusOK {
		return nil, &ProtocolError{Host: host, StatusCode: response.StatusCode(), Body: string(response.Body())}
	}
	return response, nil
}

func parseHost(value string) (string, error) {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		return "", lmq.ErrBadParameter.With("empty host")
	}
	u, err := url.Parse(value)
	if err != nil {
		return "", lmq.ErrBadParameter.Withf("host %q: %v", value, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", lmq.ErrBadParameter.Withf("host %q: unsupported scheme", value)
	}
	if u.Host == "" {
		return "", lmq.ErrBadParameter.Withf("host %q: missing host", value)
	}
	return value, nil
}

func spanName(op string) string {
	return "lmq.client." + op
}
