package memhost

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/host"
)

// Canvas is an in-memory host.Canvas.
type Canvas struct {
	objects []*Component
	index   map[uuid.UUID]*Component
	wires   []host.Wire
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{index: make(map[uuid.UUID]*Component)}
}

// Insert attaches obj and runs its insertion hooks.
func (c *Canvas) Insert(obj host.Object) error {
	comp, ok := obj.(*Component)
	if !ok {
		return fmt.Errorf("memhost: cannot insert %T", obj)
	}
	if _, dup := c.index[comp.instanceGUID]; dup {
		return fmt.Errorf("memhost: instance %s already on canvas", comp.instanceGUID)
	}
	for _, fn := range comp.onInsert {
		fn(comp)
	}
	comp.inserted = true
	c.objects = append(c.objects, comp)
	c.index[comp.instanceGUID] = comp
	return nil
}

// Add inserts every component, stopping at the first error.
func (c *Canvas) Add(comps ...*Component) error {
	for _, comp := range comps {
		if err := c.Insert(comp); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the component with the given instance id.
func (c *Canvas) Get(id uuid.UUID) (*Component, bool) {
	comp, ok := c.index[id]
	return comp, ok
}

func (c *Canvas) Objects() []host.Object {
	out := make([]host.Object, len(c.objects))
	for i, o := range c.objects {
		out[i] = o
	}
	return out
}

func (c *Canvas) Wires() []host.Wire {
	return append([]host.Wire(nil), c.wires...)
}

// Connect adds a wire. A negative ToIndex appends after existing sources.
func (c *Canvas) Connect(w host.Wire) error {
	from, ok := c.index[w.From]
	if !ok {
		return fmt.Errorf("memhost: unknown source %s", w.From)
	}
	to, ok := c.index[w.To]
	if !ok {
		return fmt.Errorf("memhost: unknown target %s", w.To)
	}
	if _, err := resolve(from, host.Output, &w.FromParam); err != nil {
		return err
	}
	if _, err := resolve(to, host.Input, &w.ToParam); err != nil {
		return err
	}
	if w.ToIndex < 0 {
		n := 0
		for _, existing := range c.wires {
			if existing.To == w.To && existing.ToParam == w.ToParam {
				n++
			}
		}
		w.ToIndex = n
	}
	c.wires = append(c.wires, w)
	return nil
}

// resolve finds the named parameter, or the only one on that side when the
// name is empty.
func resolve(comp *Component, side host.Side, name *string) (host.Param, error) {
	params := comp.Params(side)
	if *name == "" {
		if len(params) != 1 {
			return nil, fmt.Errorf("memhost: %s has %d %s parameters, name required", comp.name, len(params), side)
		}
		*name = params[0].Name()
		return params[0], nil
	}
	return host.FindParam(comp, side, *name)
}
