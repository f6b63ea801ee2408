package memhost

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// Factory builds components by type id.
type Factory struct {
	mu    sync.RWMutex
	ctors map[uuid.UUID]func() *Component
}

// NewFactory returns a factory that knows the built-in objects.
func NewFactory() *Factory {
	f := &Factory{ctors: make(map[uuid.UUID]func() *Component)}
	f.Register(SliderGUID, func() *Component { return NewSlider(0, 0, 1) })
	f.Register(PanelGUID, func() *Component { return NewPanel("") })
	f.Register(ToggleGUID, func() *Component { return NewToggle(false) })
	f.Register(SwatchGUID, func() *Component { return NewSwatch(values.Color{A: 255}) })
	f.Register(ScriptGUID, func() *Component { return NewScript("python", "") })
	f.Register(AdditionGUID, NewAddition)
	return f
}

// Register adds or replaces a constructor.
func (f *Factory) Register(id uuid.UUID, ctor func() *Component) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[id] = ctor
}

func (f *Factory) Create(id uuid.UUID, name string) (host.Object, error) {
	f.mu.RLock()
	ctor, ok := f.ctors[id]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", host.ErrUnknownComponent, name, id)
	}
	return ctor(), nil
}
