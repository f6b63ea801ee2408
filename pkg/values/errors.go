package values

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPrefix is returned when no kind is registered for a prefix.
	ErrUnknownPrefix = errors.New("unknown value prefix")

	// ErrUnknownType is returned when no kind is registered for a Go type.
	ErrUnknownType = errors.New("unknown value type")
)

// ParseError reports a string that could not be decoded.
type ParseError struct {
	Input  string // The full encoded string
	Prefix string // The prefix token, if one could be read
	Err    error  // Underlying reason
}

func (e *ParseError) Error() string {
	if e.Prefix == "" {
		return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("parse %q (%s): %v", e.Input, e.Prefix, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeError reports a value that could not be encoded.
type EncodeError struct {
	Kind string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Kind, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
