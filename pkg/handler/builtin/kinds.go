package builtin

import (
	"fmt"

	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// Property names tried in order; hosts have renamed some of these over time.
var (
	propSliderValue    = []string{"Value", "CurrentValue"}
	propSliderMin      = []string{"Minimum", "Min"}
	propSliderMax      = []string{"Maximum", "Max"}
	propSliderDecimals = []string{"DecimalPlaces", "Decimals"}

	propPanelText      = []string{"UserText", "Text"}
	propPanelMultiline = []string{"Multiline"}
	propPanelWrap      = []string{"Wrap", "WrapText"}
	propPanelColour    = []string{"Colour", "Color"}

	propToggleValue  = []string{"Value"}
	propSwatchColour = []string{"SwatchColour", "Colour", "Color"}

	propScriptSource   = []string{"ScriptSource", "Code", "Text"}
	propScriptLanguage = []string{"Language"}
	propScriptStdout   = []string{"UsingStandardOutputParam", "StandardOutput"}
)

// SliderState is the extension entry of a number slider.
type SliderState struct {
	Value    string `mapstructure:"value"` // "current<min~max>"
	Decimals int    `mapstructure:"decimals"`
}

// Slider owns the number slider extension.
type Slider struct{}

var sliderExt = extension{name: "slider", key: KeySlider}

func (Slider) Name() string                             { return sliderExt.Name() }
func (Slider) Priority() int                            { return sliderExt.Priority() }
func (Slider) CanSerialize(obj host.Object) bool        { return sliderExt.CanSerialize(obj) }
func (Slider) CanDeserialize(rec *document.Record) bool { return sliderExt.CanDeserialize(rec) }

func (Slider) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	props := obj.Properties()
	var s values.Slider
	var err error
	if s.Value, err = getFloat(props, propSliderValue...); err != nil {
		return nil, err
	}
	if s.Min, err = getFloat(props, propSliderMin...); err != nil {
		return nil, err
	}
	if s.Max, err = getFloat(props, propSliderMax...); err != nil {
		return nil, err
	}
	triple, err := values.FormatSlider(s)
	if err != nil {
		return nil, err
	}
	state := SliderState{Value: triple}
	if d, err := getFloat(props, propSliderDecimals...); err == nil {
		state.Decimals = int(d)
	}
	return sliderExt.patch(state)
}

func (Slider) Deserialize(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	var state SliderState
	if err := sliderExt.decode(rec, &state); err != nil {
		return err
	}
	s, err := values.ParseSlider(state.Value)
	if err != nil {
		return err
	}
	props := obj.Properties()
	// Widen the domain before moving the value into it.
	if _, err := host.SetFirst(props, s.Min, propSliderMin...); err != nil {
		return err
	}
	if _, err := host.SetFirst(props, s.Max, propSliderMax...); err != nil {
		return err
	}
	if _, err := host.SetFirst(props, s.Value, propSliderValue...); err != nil {
		return err
	}
	if _, err := host.SetFirst(props, state.Decimals, propSliderDecimals...); err != nil {
		ctx.Warnf("slider decimals: %v", err)
	}
	return nil
}

// PanelState is the extension entry of a text panel.
type PanelState struct {
	Text      string `mapstructure:"text"`
	Multiline bool   `mapstructure:"multiline"`
	Wrap      bool   `mapstructure:"wrap"`
	Colour    string `mapstructure:"colour,omitempty"` // argb-encoded
}

// Panel owns the text panel extension.
type Panel struct{}

var panelExt = extension{name: "panel", key: KeyPanel}

func (Panel) Name() string                             { return panelExt.Name() }
func (Panel) Priority() int                            { return panelExt.Priority() }
func (Panel) CanSerialize(obj host.Object) bool        { return panelExt.CanSerialize(obj) }
func (Panel) CanDeserialize(rec *document.Record) bool { return panelExt.CanDeserialize(rec) }

func (Panel) Serialize(ctx *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	props := obj.Properties()
	text, err := getString(props, propPanelText...)
	if err != nil {
		return nil, err
	}
	state := PanelState{Text: text}
	state.Multiline, _ = getBool(props, propPanelMultiline...)
	state.Wrap, _ = getBool(props, propPanelWrap...)
	if c, ok := host.GetAs[values.Color](props, propPanelColour...); ok {
		if state.Colour, err = ctx.Codec.Encode(c); err != nil {
			return nil, err
		}
	}
	return panelExt.patch(state)
}

func (Panel) Deserialize(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	var state PanelState
	if err := panelExt.decode(rec, &state); err != nil {
		return err
	}
	props := obj.Properties()
	if _, err := host.SetFirst(props, state.Text, propPanelText...); err != nil {
		return err
	}
	if _, err := host.SetFirst(props, state.Multiline, propPanelMultiline...); err != nil {
		ctx.Warnf("panel multiline: %v", err)
	}
	if _, err := host.SetFirst(props, state.Wrap, propPanelWrap...); err != nil {
		ctx.Warnf("panel wrap: %v", err)
	}
	if state.Colour != "" {
		c, err := decodeColor(ctx.Codec, state.Colour)
		if err != nil {
			return err
		}
		if _, err := host.SetFirst(props, c, propPanelColour...); err != nil {
			ctx.Warnf("panel colour: %v", err)
		}
	}
	return nil
}

func decodeColor(codec *values.Registry, s string) (values.Color, error) {
	v, err := codec.Decode(s)
	if err != nil {
		return values.Color{}, err
	}
	c, ok := values.As[values.Color](v)
	if !ok {
		return values.Color{}, fmt.Errorf("expected a colour, got %s", v.Kind)
	}
	return c, nil
}

// ToggleState is the extension entry of a boolean toggle.
type ToggleState struct {
	Value bool `mapstructure:"value"`
}

// Toggle owns the boolean toggle extension.
type Toggle struct{}

var toggleExt = extension{name: "toggle", key: KeyToggle}

func (Toggle) Name() string                             { return toggleExt.Name() }
func (Toggle) Priority() int                            { return toggleExt.Priority() }
func (Toggle) CanSerialize(obj host.Object) bool        { return toggleExt.CanSerialize(obj) }
func (Toggle) CanDeserialize(rec *document.Record) bool { return toggleExt.CanDeserialize(rec) }

func (Toggle) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	on, err := getBool(obj.Properties(), propToggleValue...)
	if err != nil {
		return nil, err
	}
	return toggleExt.patch(ToggleState{Value: on})
}

func (Toggle) Deserialize(_ *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	var state ToggleState
	if err := toggleExt.decode(rec, &state); err != nil {
		return err
	}
	_, err := host.SetFirst(obj.Properties(), state.Value, propToggleValue...)
	return err
}

// SwatchState is the extension entry of a colour swatch.
type SwatchState struct {
	Colour string `mapstructure:"colour"` // argb-encoded
}

// Swatch owns the colour swatch extension.
type Swatch struct{}

var swatchExt = extension{name: "swatch", key: KeySwatch}

func (Swatch) Name() string                             { return swatchExt.Name() }
func (Swatch) Priority() int                            { return swatchExt.Priority() }
func (Swatch) CanSerialize(obj host.Object) bool        { return swatchExt.CanSerialize(obj) }
func (Swatch) CanDeserialize(rec *document.Record) bool { return swatchExt.CanDeserialize(rec) }

func (Swatch) Serialize(ctx *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	c, ok := host.GetAs[values.Color](obj.Properties(), propSwatchColour...)
	if !ok {
		return nil, fmt.Errorf("swatch colour: %w", host.ErrPropertyNotFound)
	}
	s, err := ctx.Codec.Encode(c)
	if err != nil {
		return nil, err
	}
	return swatchExt.patch(SwatchState{Colour: s})
}

func (Swatch) Deserialize(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	var state SwatchState
	if err := swatchExt.decode(rec, &state); err != nil {
		return err
	}
	c, err := decodeColor(ctx.Codec, state.Colour)
	if err != nil {
		return err
	}
	_, err = host.SetFirst(obj.Properties(), c, propSwatchColour...)
	return err
}
