package values

import (
	"fmt"
	"reflect"
)

// Kind defines the contract for one value shape.
// Implementations own a prefix token and the payload grammar behind it.
type Kind interface {
	// Name returns the stable type identifier (e.g. "point", "color").
	Name() string
	// Prefix returns the canonical prefix token written before the colon.
	Prefix() string
	// Type returns the Go type handled by this kind.
	Type() reflect.Type
	// Format renders v as a payload (without the prefix).
	Format(v any) (string, error)
	// Parse decodes a payload (without the prefix).
	Parse(payload string) (any, error)
}

// Value is a decoded value together with the name of its kind.
type Value struct {
	Kind string
	Data any
}

// As returns the payload of v as T.
func As[T any](v Value) (T, bool) {
	t, ok := v.Data.(T)
	return t, ok
}

type kind[T any] struct {
	name   string
	prefix string
	format func(T) (string, error)
	parse  func(string) (T, error)
}

// Define creates a Kind for values of type T.
func Define[T any](name, prefix string, format func(T) (string, error), parse func(string) (T, error)) Kind {
	return &kind[T]{name: name, prefix: prefix, format: format, parse: parse}
}

func (k *kind[T]) Name() string       { return k.name }
func (k *kind[T]) Prefix() string     { return k.prefix }
func (k *kind[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (k *kind[T]) Format(v any) (string, error) {
	t, ok := v.(T)
	if !ok {
		return "", fmt.Errorf("expected %s, got %T", k.Type(), v)
	}
	return k.format(t)
}

func (k *kind[T]) Parse(payload string) (any, error) {
	return k.parse(payload)
}
