package lmq

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is an error code. Errors returned from the client packages wrap one
// of these so they can be tested with errors.Is.
type Err int

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrBadParameter
	ErrNotFound
	ErrTransport
	ErrProtocol
	ErrDecode
	ErrInternalAppError
)

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotFound:
		return "not found"
	case ErrTransport:
		return "transport failure"
	case ErrProtocol:
		return "protocol failure"
	case ErrDecode:
		return "decode failure"
	case ErrInternalAppError:
		return "internal application error"
	}
	return fmt.Sprintf("error code %d", int(e))
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) With(args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}
