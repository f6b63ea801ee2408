package builtin

import (
	"github.com/aretw0/canvasdoc/pkg/handler"
)

// Extension keys, equal to the host type keys they apply to.
const (
	KeySlider = "gh.numberslider"
	KeyPanel  = "gh.panel"
	KeyToggle = "gh.booleantoggle"
	KeySwatch = "gh.colourswatch"
	KeyScript = "gh.script"
)

// StandardOutputParam is the output a script host adds for captured stdout.
const StandardOutputParam = "out"

// Structural returns the priority-0 handlers in registration order.
func Structural() []handler.Handler {
	return []handler.Handler{
		Identity{},
		Placement{},
		Attributes{},
		Parameters{},
		Modifiers{},
		Internalized{},
		Messages{},
	}
}

// Extensions returns the priority-100 handlers in registration order.
func Extensions() []handler.Handler {
	return []handler.Handler{
		Slider{},
		Panel{},
		Toggle{},
		Swatch{},
		Script{},
	}
}

// Register adds every built-in handler to r.
func Register(r *handler.Registry) error {
	for _, h := range append(Structural(), Extensions()...) {
		if err := r.Register(h); err != nil {
			return err
		}
	}
	return nil
}
