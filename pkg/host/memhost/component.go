package memhost

import (
	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/host"
)

// Component is an in-memory live object.
type Component struct {
	kind          host.Kind
	typ           string
	componentGUID uuid.UUID
	instanceGUID  uuid.UUID
	name          string
	nick          string
	x, y          float64

	locked   bool
	hidden   bool
	selected bool

	inputs  []*Parameter
	outputs []*Parameter

	errors   []string
	warnings []string
	remarks  []string

	props    host.PropertyBridge
	onInsert []func(*Component)
	inserted bool
}

// Option configures a Component.
type Option func(*Component)

// WithKind sets the discriminant. The default is host.KindComponent.
func WithKind(k host.Kind) Option {
	return func(c *Component) { c.kind = k }
}

// WithType sets the namespaced type key.
func WithType(t string) Option {
	return func(c *Component) { c.typ = t }
}

// WithInstanceGUID fixes the instance id instead of generating one.
func WithInstanceGUID(id uuid.UUID) Option {
	return func(c *Component) { c.instanceGUID = id }
}

// WithInputs adds input parameters by name.
func WithInputs(names ...string) Option {
	return func(c *Component) {
		for _, n := range names {
			c.inputs = append(c.inputs, NewParameter(n))
		}
	}
}

// WithOutputs adds output parameters by name.
func WithOutputs(names ...string) Option {
	return func(c *Component) {
		for _, n := range names {
			c.outputs = append(c.outputs, NewParameter(n))
		}
	}
}

// WithProperties replaces the property bridge.
func WithProperties(b host.PropertyBridge) Option {
	return func(c *Component) { c.props = b }
}

// OnInsert registers fn to run when the component is inserted into a canvas.
func OnInsert(fn func(*Component)) Option {
	return func(c *Component) { c.onInsert = append(c.onInsert, fn) }
}

// NewComponent creates a component with a fresh instance id.
func NewComponent(name string, componentGUID uuid.UUID, opts ...Option) *Component {
	c := &Component{
		kind:          host.KindComponent,
		typ:           "component",
		componentGUID: componentGUID,
		instanceGUID:  uuid.New(),
		name:          name,
		nick:          name,
		props:         host.NewMapBridge(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Component) Kind() host.Kind                 { return c.kind }
func (c *Component) Type() string                    { return c.typ }
func (c *Component) ComponentGUID() uuid.UUID        { return c.componentGUID }
func (c *Component) InstanceGUID() uuid.UUID         { return c.instanceGUID }
func (c *Component) SetInstanceGUID(id uuid.UUID)    { c.instanceGUID = id }
func (c *Component) Name() string                    { return c.name }
func (c *Component) NickName() string                { return c.nick }
func (c *Component) SetNickName(n string)            { c.nick = n }
func (c *Component) Pivot() (float64, float64)       { return c.x, c.y }
func (c *Component) SetPivot(x, y float64)           { c.x, c.y = x, y }
func (c *Component) Locked() bool                    { return c.locked }
func (c *Component) SetLocked(b bool)                { c.locked = b }
func (c *Component) Hidden() bool                    { return c.hidden }
func (c *Component) SetHidden(b bool)                { c.hidden = b }
func (c *Component) Selected() bool                  { return c.selected }
func (c *Component) SetSelected(b bool)              { c.selected = b }
func (c *Component) Properties() host.PropertyBridge { return c.props }

// Inserted reports whether the component has been placed on a canvas.
func (c *Component) Inserted() bool { return c.inserted }

func (c *Component) Params(side host.Side) []host.Param {
	src := c.inputs
	if side == host.Output {
		src = c.outputs
	}
	out := make([]host.Param, len(src))
	for i, p := range src {
		out[i] = p
	}
	return out
}

// Input returns the concrete input parameter named name.
func (c *Component) Input(name string) (*Parameter, bool) {
	return lookup(c.inputs, name)
}

// Output returns the concrete output parameter named name.
func (c *Component) Output(name string) (*Parameter, bool) {
	return lookup(c.outputs, name)
}

func lookup(params []*Parameter, name string) (*Parameter, bool) {
	for _, p := range params {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// SetMessages replaces the runtime diagnostics.
func (c *Component) SetMessages(errors, warnings, remarks []string) {
	c.errors, c.warnings, c.remarks = errors, warnings, remarks
}

func (c *Component) Messages() (errors, warnings, remarks []string) {
	return c.errors, c.warnings, c.remarks
}
