package builtin

import (
	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/host"
)

// Identity owns name, nickname and both ids.
type Identity struct{}

func (Identity) Name() string                         { return "identity" }
func (Identity) Priority() int                        { return handler.PriorityStructural }
func (Identity) CanSerialize(host.Object) bool        { return true }
func (Identity) CanDeserialize(*document.Record) bool { return true }

func (Identity) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	rec := &document.Record{
		Name:          obj.Name(),
		ComponentGUID: obj.ComponentGUID(),
		InstanceGUID:  obj.InstanceGUID(),
	}
	if nick := obj.NickName(); nick != obj.Name() {
		rec.NickName = nick
	}
	return rec, nil
}

func (Identity) Deserialize(_ *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	if rec.NickName != "" {
		obj.SetNickName(rec.NickName)
	}
	if rec.InstanceGUID != uuid.Nil {
		obj.SetInstanceGUID(rec.InstanceGUID)
	}
	return nil
}

// Placement owns the canvas pivot.
type Placement struct{}

func (Placement) Name() string                         { return "placement" }
func (Placement) Priority() int                        { return handler.PriorityStructural }
func (Placement) CanSerialize(host.Object) bool        { return true }
func (Placement) CanDeserialize(*document.Record) bool { return true }

func (Placement) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	x, y := obj.Pivot()
	return &document.Record{Pivot: document.Point2{X: x, Y: y}}, nil
}

func (Placement) Deserialize(_ *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	obj.SetPivot(rec.Pivot.X, rec.Pivot.Y)
	return nil
}

// Attributes owns the locked, hidden and selected flags.
// Only flags that are set on the object are written.
type Attributes struct{}

func (Attributes) Name() string                  { return "attributes" }
func (Attributes) Priority() int                 { return handler.PriorityStructural }
func (Attributes) CanSerialize(host.Object) bool { return true }

func (Attributes) CanDeserialize(rec *document.Record) bool {
	return rec.State != nil
}

func (Attributes) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	state := &document.ComponentState{}
	if obj.Locked() {
		state.Locked = document.Flag(true)
	}
	if obj.Hidden() {
		state.Hidden = document.Flag(true)
	}
	if obj.Selected() {
		state.Selected = document.Flag(true)
	}
	if state.Locked == nil && state.Hidden == nil && state.Selected == nil {
		return &document.Record{}, nil
	}
	return &document.Record{State: state}, nil
}

func (Attributes) Deserialize(_ *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	if v := rec.State.Locked; v != nil {
		obj.SetLocked(*v)
	}
	if v := rec.State.Hidden; v != nil {
		obj.SetHidden(*v)
	}
	if v := rec.State.Selected; v != nil {
		obj.SetSelected(*v)
	}
	return nil
}

// Messages copies runtime diagnostics. They are never restored.
type Messages struct{}

func (Messages) Name() string                         { return "messages" }
func (Messages) Priority() int                        { return handler.PriorityStructural }
func (Messages) CanDeserialize(*document.Record) bool { return false }

func (Messages) CanSerialize(obj host.Object) bool {
	return obj.Kind() == host.KindComponent
}

func (Messages) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	errs, warns, remarks := obj.Messages()
	return &document.Record{
		Errors:   append([]string(nil), errs...),
		Warnings: append([]string(nil), warns...),
		Remarks:  append([]string(nil), remarks...),
	}, nil
}

func (Messages) Deserialize(*handler.DeserializeContext, *document.Record, host.Object) error {
	return nil
}
