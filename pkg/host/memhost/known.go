package memhost

import (
	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// Component type ids of the built-in objects.
var (
	SliderGUID   = uuid.MustParse("57da07bd-ecab-415d-9d86-af36d7073abc")
	PanelGUID    = uuid.MustParse("59e0b89a-e487-49f8-bab8-b5bab16be14c")
	ToggleGUID   = uuid.MustParse("2e78987b-9dfb-42a2-8b76-3923ac8bd91a")
	SwatchGUID   = uuid.MustParse("9c53bac0-ba66-40bd-8154-ce9829b9db1a")
	ScriptGUID   = uuid.MustParse("c9b2d725-6f87-4b07-af90-bd9aefef68eb")
	AdditionGUID = uuid.MustParse("a0d62394-a118-422d-abb3-6af115c75b25")
)

// Type keys of the built-in objects.
const (
	TypeSlider = "gh.numberslider"
	TypePanel  = "gh.panel"
	TypeToggle = "gh.booleantoggle"
	TypeSwatch = "gh.colourswatch"
	TypeScript = "gh.script"
)

// SliderProps backs a number slider.
type SliderProps struct {
	Value         float64
	Minimum       float64
	Maximum       float64
	DecimalPlaces int
}

// PanelProps backs a text panel.
type PanelProps struct {
	UserText  string
	Multiline bool
	Wrap      bool
	Colour    values.Color
}

// SwatchProps backs a colour swatch.
type SwatchProps struct {
	SwatchColour values.Color
}

// ScriptProps backs a script component.
type ScriptProps struct {
	Code                     string
	Language                 string
	UsingStandardOutputParam bool
}

func mustStruct(ptr any) host.PropertyBridge {
	b, err := host.NewStructBridge(ptr)
	if err != nil {
		panic(err)
	}
	return b
}

// NewSlider creates a number slider.
func NewSlider(value, min, max float64) *Component {
	props := &SliderProps{Value: value, Minimum: min, Maximum: max, DecimalPlaces: 2}
	return NewComponent("Number Slider", SliderGUID,
		WithKind(host.KindParameter),
		WithType(TypeSlider),
		WithOutputs("Number"),
		WithProperties(mustStruct(props)),
	)
}

// NewPanel creates a text panel.
func NewPanel(text string) *Component {
	props := &PanelProps{
		UserText:  text,
		Multiline: true,
		Wrap:      true,
		Colour:    values.Color{A: 255, R: 255, G: 250, B: 90},
	}
	return NewComponent("Panel", PanelGUID,
		WithKind(host.KindParameter),
		WithType(TypePanel),
		WithInputs("Input"),
		WithOutputs("Output"),
		WithProperties(mustStruct(props)),
	)
}

// NewToggle creates a boolean toggle.
func NewToggle(on bool) *Component {
	return NewComponent("Boolean Toggle", ToggleGUID,
		WithKind(host.KindParameter),
		WithType(TypeToggle),
		WithOutputs("Boolean"),
		WithProperties(host.NewMapBridge(map[string]any{"Value": on})),
	)
}

// NewSwatch creates a colour swatch.
func NewSwatch(c values.Color) *Component {
	return NewComponent("Colour Swatch", SwatchGUID,
		WithKind(host.KindParameter),
		WithType(TypeSwatch),
		WithOutputs("Colour"),
		WithProperties(mustStruct(&SwatchProps{SwatchColour: c})),
	)
}

// NewScript creates a script component with inputs x, y and outputs out, a.
// Inserting it into a canvas turns the standard output back on.
func NewScript(language, code string) *Component {
	props := &ScriptProps{Code: code, Language: language, UsingStandardOutputParam: true}
	return NewComponent("Script", ScriptGUID,
		WithType(TypeScript),
		WithInputs("x", "y"),
		WithOutputs("out", "a"),
		WithProperties(mustStruct(props)),
		OnInsert(func(*Component) { props.UsingStandardOutputParam = true }),
	)
}

// NewAddition creates a plain two-input component.
func NewAddition() *Component {
	return NewComponent("Addition", AdditionGUID,
		WithInputs("A", "B"),
		WithOutputs("Result"),
	)
}
