package host

import (
	"fmt"
	"reflect"
	"sync"
)

// PropertyBridge reads and writes host properties by name.
type PropertyBridge interface {
	// Get returns an error wrapping ErrPropertyNotFound for unknown names.
	Get(name string) (any, error)
	Set(name string, v any) error
}

// GetFirst returns the first property that exists among names, together with
// the name that matched.
func GetFirst(b PropertyBridge, names ...string) (any, string, error) {
	for _, name := range names {
		v, err := b.Get(name)
		if err == nil {
			return v, name, nil
		}
	}
	return nil, "", fmt.Errorf("%w: tried %v", ErrPropertyNotFound, names)
}

// SetFirst writes v to the first property among names that accepts it.
func SetFirst(b PropertyBridge, v any, names ...string) (string, error) {
	var last error
	for _, name := range names {
		err := b.Set(name, v)
		if err == nil {
			return name, nil
		}
		last = err
	}
	if last == nil {
		last = ErrPropertyNotFound
	}
	return "", fmt.Errorf("set %v: %w", names, last)
}

// GetAs is GetFirst with a type assertion.
func GetAs[T any](b PropertyBridge, names ...string) (T, bool) {
	var zero T
	v, _, err := GetFirst(b, names...)
	if err != nil {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// MapBridge is a PropertyBridge over a plain map.
type MapBridge struct {
	mu    sync.RWMutex
	props map[string]any
}

// NewMapBridge returns a bridge seeded with props.
func NewMapBridge(props map[string]any) *MapBridge {
	m := make(map[string]any, len(props))
	for k, v := range props {
		m[k] = v
	}
	return &MapBridge{props: m}
}

func (b *MapBridge) Get(name string) (any, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPropertyNotFound, name)
	}
	return v, nil
}

// Set creates or replaces the property.
func (b *MapBridge) Set(name string, v any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.props[name] = v
	return nil
}

// StructBridge exposes the exported fields of a struct by field name.
type StructBridge struct {
	target reflect.Value
}

// NewStructBridge wraps a pointer to a struct.
func NewStructBridge(ptr any) (*StructBridge, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("struct bridge: want non-nil pointer to struct, got %T", ptr)
	}
	return &StructBridge{target: v.Elem()}, nil
}

func (b *StructBridge) field(name string) (reflect.Value, error) {
	sf, ok := b.target.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, name)
	}
	return b.target.FieldByIndex(sf.Index), nil
}

func (b *StructBridge) Get(name string) (any, error) {
	f, err := b.field(name)
	if err != nil {
		return nil, err
	}
	return f.Interface(), nil
}

// Set assigns v, converting between numeric types where Go allows it.
func (b *StructBridge) Set(name string, v any) error {
	f, err := b.field(name)
	if err != nil {
		return err
	}
	if v == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(f.Type()):
		f.Set(rv)
	case rv.Type().ConvertibleTo(f.Type()) && rv.Kind() != reflect.String && f.Kind() != reflect.String:
		f.Set(rv.Convert(f.Type()))
	default:
		return fmt.Errorf("property %s: cannot assign %T to %s", name, v, f.Type())
	}
	return nil
}
