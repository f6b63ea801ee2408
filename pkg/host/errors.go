package host

import "errors"

var (
	// ErrParamNotFound is returned when a named parameter does not exist on an object.
	ErrParamNotFound = errors.New("parameter not found")

	// ErrPropertyNotFound is returned when a bridge has none of the requested properties.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrUnknownComponent is returned by a Factory that cannot build a component type.
	ErrUnknownComponent = errors.New("unknown component type")
)
