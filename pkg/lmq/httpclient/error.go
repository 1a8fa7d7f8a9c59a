package httpclient

import (
	"fmt"

	// Packages
	lmq "github.com/mutablelogic/go-lmq"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// TransportError is returned when no response was received from a host:
// the connection was refused, reset or timed out, or the context was
// cancelled.
type TransportError struct {
	Host int
	Err  error
}

// ProtocolError is returned when a host replied with any status other
// than 200. Body is the raw response body.
type ProtocolError struct {
	Host       int
	StatusCode int
	Body       string
}

// DecodeError is returned when a 200 response could not be decoded into
// the expected shape.
type DecodeError struct {
	Host int
	Body string
	Err  error
}

// RotationError is returned when every host or entry in a rotation failed.
// It behaves as the last failure; Errors holds all of them in the order
// they were attempted.
type RotationError struct {
	Errors []error
}

////////////////////////////////////////////////////////////////////////////////
// TRANSPORT

func (e *TransportError) Error() string {
	return fmt.Sprintf("host %d: %v", e.Host, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{lmq.ErrTransport, e.Err}
}

////////////////////////////////////////////////////////////////////////////////
// PROTOCOL

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("host %d: status %d", e.Host, e.StatusCode)
	}
	return fmt.Sprintf("host %d: status %d: %s", e.Host, e.StatusCode, e.Body)
}

// Unwrap allows errors.Is(err, httpresponse.ErrNotFound) and similar
// checks against the status code.
func (e *ProtocolError) Unwrap() []error {
	return []error{lmq.ErrProtocol, httpresponse.Err(e.StatusCode)}
}

////////////////////////////////////////////////////////////////////////////////
// DECODE

func (e *DecodeError) Error() string {
	return fmt.Sprintf("host %d: cannot decode %q: %v", e.Host, e.Body, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{lmq.ErrDecode, e.Err}
}

////////////////////////////////////////////////////////////////////////////////
// ROTATION

// Last returns the most recent failure
func (e *RotationError) Last() error {
	if len(e.Errors) == 0 {
		return lmq.ErrNotFound.With("nothing attempted")
	}
	return e.Errors[len(e.Errors)-1]
}

func (e *RotationError) Error() string {
	return e.Last().Error()
}

func (e *RotationError) Unwrap() error {
	return e.Last()
}
