package builtin

import (
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/host"
)

// ScriptState is the extension entry of a script component.
type ScriptState struct {
	Source         string `mapstructure:"source"`
	Language       string `mapstructure:"language,omitempty"`
	StandardOutput bool   `mapstructure:"standard_output"`
}

// Script owns the script extension. When the standard output is turned off it
// drops the host-generated "out" parameter from the record, and it re-applies
// the flag after placement because hosts turn it back on when the component
// is inserted.
type Script struct{}

var scriptExt = extension{name: "script", key: KeyScript}

func (Script) Name() string                             { return scriptExt.Name() }
func (Script) Priority() int                            { return scriptExt.Priority() }
func (Script) CanSerialize(obj host.Object) bool        { return scriptExt.CanSerialize(obj) }
func (Script) CanDeserialize(rec *document.Record) bool { return scriptExt.CanDeserialize(rec) }

func (Script) Serialize(ctx *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	props := obj.Properties()
	src, err := getString(props, propScriptSource...)
	if err != nil {
		return nil, err
	}
	state := ScriptState{Source: src, StandardOutput: true}
	state.Language, _ = getString(props, propScriptLanguage...)
	if on, err := getBool(props, propScriptStdout...); err == nil {
		state.StandardOutput = on
	}
	if !state.StandardOutput {
		ctx.OmitParam(host.Output, StandardOutputParam)
	}
	return scriptExt.patch(state)
}

func (Script) Deserialize(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	state := ScriptState{StandardOutput: true}
	if err := scriptExt.decode(rec, &state); err != nil {
		return err
	}
	props := obj.Properties()
	if _, err := host.SetFirst(props, state.Source, propScriptSource...); err != nil {
		return err
	}
	if state.Language != "" {
		if _, err := host.SetFirst(props, state.Language, propScriptLanguage...); err != nil {
			ctx.Warnf("script language: %v", err)
		}
	}
	return applyStdout(props, state.StandardOutput)
}

func (Script) PostPlace(_ *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	state := ScriptState{StandardOutput: true}
	if err := scriptExt.decode(rec, &state); err != nil {
		return err
	}
	return applyStdout(obj.Properties(), state.StandardOutput)
}

func applyStdout(props host.PropertyBridge, on bool) error {
	_, err := host.SetFirst(props, on, propScriptStdout...)
	return err
}
