package values

import (
	"fmt"
	"reflect"
	"strings"
)

// Registry maps prefixes and Go types to kinds.
// It is immutable after construction and needs no locking.
type Registry struct {
	kinds    []Kind
	byPrefix map[string]Kind // lower-cased prefix
	byName   map[string]Kind
	byType   map[reflect.Type]Kind
}

var defaultRegistry = MustRegistry(Builtins()...)

// Default returns the registry holding the built-in kinds.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry builds a registry from the given kinds.
// Prefixes are compared case-insensitively and must be unique, as must
// names and Go types.
func NewRegistry(kinds ...Kind) (*Registry, error) {
	r := &Registry{
		kinds:    make([]Kind, 0, len(kinds)),
		byPrefix: make(map[string]Kind, len(kinds)),
		byName:   make(map[string]Kind, len(kinds)),
		byType:   make(map[reflect.Type]Kind, len(kinds)),
	}
	for _, k := range kinds {
		if k == nil {
			return nil, fmt.Errorf("values: nil kind")
		}
		prefix := strings.ToLower(k.Prefix())
		if !validPrefix(prefix) {
			return nil, fmt.Errorf("values: kind %s has invalid prefix %q", k.Name(), k.Prefix())
		}
		if prev, ok := r.byPrefix[prefix]; ok {
			return nil, fmt.Errorf("values: prefix %q registered by both %s and %s", k.Prefix(), prev.Name(), k.Name())
		}
		if _, ok := r.byName[k.Name()]; ok {
			return nil, fmt.Errorf("values: duplicate kind name %q", k.Name())
		}
		if prev, ok := r.byType[k.Type()]; ok {
			return nil, fmt.Errorf("values: type %s registered by both %s and %s", k.Type(), prev.Name(), k.Name())
		}
		r.byPrefix[prefix] = k
		r.byName[k.Name()] = k
		r.byType[k.Type()] = k
		r.kinds = append(r.kinds, k)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(kinds ...Kind) *Registry {
	r, err := NewRegistry(kinds...)
	if err != nil {
		panic(err)
	}
	return r
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Lookup returns the kind registered for prefix (case-insensitive).
func (r *Registry) Lookup(prefix string) (Kind, bool) {
	k, ok := r.byPrefix[strings.ToLower(prefix)]
	return k, ok
}

// Named returns the kind with the given type identifier.
func (r *Registry) Named(name string) (Kind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// KindOf returns the kind that encodes v.
func (r *Registry) KindOf(v any) (Kind, bool) {
	v = normalize(v)
	if v == nil {
		return nil, false
	}
	k, ok := r.byType[reflect.TypeOf(v)]
	return k, ok
}

// Encode renders v in canonical "prefix:payload" form, choosing the kind by
// the Go type of v.
func (r *Registry) Encode(v any) (string, error) {
	k, ok := r.KindOf(v)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrUnknownType, v)
	}
	return encodeWith(k, normalize(v))
}

// EncodeAs renders v with the kind registered under name.
func (r *Registry) EncodeAs(name string, v any) (string, error) {
	k, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: kind %q", ErrUnknownType, name)
	}
	return encodeWith(k, normalize(v))
}

func encodeWith(k Kind, v any) (string, error) {
	payload, err := k.Format(v)
	if err != nil {
		return "", &EncodeError{Kind: k.Name(), Err: err}
	}
	return k.Prefix() + ":" + payload, nil
}

// Decode parses a "prefix:payload" string.
func (r *Registry) Decode(s string) (Value, error) {
	k, payload, err := r.split(s)
	if err != nil {
		return Value{}, err
	}
	data, err := k.Parse(payload)
	if err != nil {
		return Value{}, &ParseError{Input: s, Prefix: k.Prefix(), Err: err}
	}
	return Value{Kind: k.Name(), Data: data}, nil
}

// Validate reports whether Decode would succeed for s. It has no side effects.
func (r *Registry) Validate(s string) bool {
	k, payload, err := r.split(s)
	if err != nil {
		return false
	}
	_, err = k.Parse(payload)
	return err == nil
}

// split separates the prefix and resolves its kind.
func (r *Registry) split(s string) (Kind, string, error) {
	prefix, payload, found := strings.Cut(s, ":")
	if !found {
		return nil, "", &ParseError{Input: s, Err: fmt.Errorf("missing prefix separator")}
	}
	if !validPrefix(prefix) {
		return nil, "", &ParseError{Input: s, Err: fmt.Errorf("malformed prefix %q", prefix)}
	}
	k, ok := r.Lookup(prefix)
	if !ok {
		return nil, "", &ParseError{Input: s, Prefix: prefix, Err: ErrUnknownPrefix}
	}
	return k, payload, nil
}

func validPrefix(p string) bool {
	if p == "" {
		return false
	}
	for _, c := range p {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// normalize widens common Go scalar types to the types the built-ins use.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}
