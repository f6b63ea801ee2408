package handler

import (
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/host"
)

// Priority bands used by the built-in handlers.
const (
	PriorityStructural = 0
	PriorityExtension  = 100
)

// Handler serializes and deserializes one slice of a node's state.
type Handler interface {
	// Name identifies the handler in the registry and in error messages.
	Name() string
	// Priority orders handlers; lower runs first.
	Priority() int

	CanSerialize(obj host.Object) bool
	CanDeserialize(rec *document.Record) bool

	// Serialize returns a patch holding only the fields this handler owns.
	Serialize(ctx *SerializeContext, obj host.Object) (*document.Record, error)
	// Deserialize applies this handler's fields from rec onto obj.
	Deserialize(ctx *DeserializeContext, rec *document.Record, obj host.Object) error
}

// PostPlacer is implemented by handlers whose state the host resets when an
// object is inserted into a canvas.
type PostPlacer interface {
	PostPlace(ctx *DeserializeContext, rec *document.Record, obj host.Object) error
}

// Funcs adapts plain functions to Handler and PostPlacer.
// Nil predicates accept everything; nil operations do nothing.
type Funcs struct {
	HandlerName     string
	HandlerPriority int

	CanSerializeFn   func(obj host.Object) bool
	CanDeserializeFn func(rec *document.Record) bool
	SerializeFn      func(ctx *SerializeContext, obj host.Object) (*document.Record, error)
	DeserializeFn    func(ctx *DeserializeContext, rec *document.Record, obj host.Object) error
	PostPlaceFn      func(ctx *DeserializeContext, rec *document.Record, obj host.Object) error
}

func (f *Funcs) Name() string  { return f.HandlerName }
func (f *Funcs) Priority() int { return f.HandlerPriority }

func (f *Funcs) CanSerialize(obj host.Object) bool {
	return f.CanSerializeFn == nil || f.CanSerializeFn(obj)
}

func (f *Funcs) CanDeserialize(rec *document.Record) bool {
	return f.CanDeserializeFn == nil || f.CanDeserializeFn(rec)
}

func (f *Funcs) Serialize(ctx *SerializeContext, obj host.Object) (*document.Record, error) {
	if f.SerializeFn == nil {
		return &document.Record{}, nil
	}
	return f.SerializeFn(ctx, obj)
}

func (f *Funcs) Deserialize(ctx *DeserializeContext, rec *document.Record, obj host.Object) error {
	if f.DeserializeFn == nil {
		return nil
	}
	return f.DeserializeFn(ctx, rec, obj)
}

func (f *Funcs) PostPlace(ctx *DeserializeContext, rec *document.Record, obj host.Object) error {
	if f.PostPlaceFn == nil {
		return nil
	}
	return f.PostPlaceFn(ctx, rec, obj)
}
