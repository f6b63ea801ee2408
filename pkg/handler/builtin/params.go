package builtin

import (
	"github.com/aretw0/canvasdoc/pkg/datatree"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/host"
)

func hasParams(obj host.Object) bool {
	return len(obj.Params(host.Input)) > 0 || len(obj.Params(host.Output)) > 0
}

func hasRecordParams(rec *document.Record) bool {
	return len(rec.Inputs) > 0 || len(rec.Outputs) > 0
}

// eachParam builds one settings entry per live parameter, in host order.
func eachParam(obj host.Object, side host.Side, fn func(host.Param, *document.ParameterSettings) error) ([]document.ParameterSettings, error) {
	params := obj.Params(side)
	if len(params) == 0 {
		return nil, nil
	}
	out := make([]document.ParameterSettings, 0, len(params))
	for _, p := range params {
		ps := document.ParameterSettings{ParameterName: p.Name()}
		if err := fn(p, &ps); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, nil
}

func serializeSides(obj host.Object, fn func(host.Param, *document.ParameterSettings) error) (*document.Record, error) {
	in, err := eachParam(obj, host.Input, fn)
	if err != nil {
		return nil, err
	}
	out, err := eachParam(obj, host.Output, fn)
	if err != nil {
		return nil, err
	}
	return &document.Record{Inputs: in, Outputs: out}, nil
}

// applySides calls fn for every record parameter that exists on obj. Missing
// parameters are reported as warnings.
func applySides(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object, fn func(*document.ParameterSettings, host.Param)) {
	sides := []struct {
		side   host.Side
		params []document.ParameterSettings
	}{
		{host.Input, rec.Inputs},
		{host.Output, rec.Outputs},
	}
	for _, s := range sides {
		for i := range s.params {
			ps := &s.params[i]
			p, err := host.FindParam(obj, s.side, ps.ParameterName)
			if err != nil {
				ctx.Warnf("%v", err)
				continue
			}
			fn(ps, p)
		}
	}
}

// Parameters owns parameter identity, order and nicknames.
type Parameters struct{}

func (Parameters) Name() string                             { return "parameters" }
func (Parameters) Priority() int                            { return handler.PriorityStructural }
func (Parameters) CanSerialize(obj host.Object) bool        { return hasParams(obj) }
func (Parameters) CanDeserialize(rec *document.Record) bool { return hasRecordParams(rec) }

func (Parameters) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	return serializeSides(obj, func(p host.Param, ps *document.ParameterSettings) error {
		if nick := p.NickName(); nick != p.Name() {
			ps.NickName = nick
		}
		return nil
	})
}

func (Parameters) Deserialize(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	applySides(ctx, rec, obj, func(ps *document.ParameterSettings, p host.Param) {
		if ps.NickName != "" {
			p.SetNickName(ps.NickName)
		}
	})
	return nil
}

var modifierFlags = []struct {
	mod   host.Modifier
	field func(*document.ParameterSettings) **bool
}{
	{host.Reverse, func(ps *document.ParameterSettings) **bool { return &ps.Reverse }},
	{host.Simplify, func(ps *document.ParameterSettings) **bool { return &ps.Simplify }},
	{host.Invert, func(ps *document.ParameterSettings) **bool { return &ps.Invert }},
	{host.Unitize, func(ps *document.ParameterSettings) **bool { return &ps.Unitize }},
	{host.Principal, func(ps *document.ParameterSettings) **bool { return &ps.Principal }},
	{host.Optional, func(ps *document.ParameterSettings) **bool { return &ps.Optional }},
}

// Modifiers owns access, data mapping, flags and expressions.
type Modifiers struct{}

func (Modifiers) Name() string                             { return "modifiers" }
func (Modifiers) Priority() int                            { return handler.PriorityStructural }
func (Modifiers) CanSerialize(obj host.Object) bool        { return hasParams(obj) }
func (Modifiers) CanDeserialize(rec *document.Record) bool { return hasRecordParams(rec) }

func (Modifiers) Serialize(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	return serializeSides(obj, func(p host.Param, ps *document.ParameterSettings) error {
		ps.Access = document.Access(p.Access())
		if m := document.DataMapping(p.DataMapping()); m != document.MappingNone {
			ps.DataMapping = m
		}
		for _, f := range modifierFlags {
			if p.Flag(f.mod) {
				*f.field(ps) = document.Flag(true)
			}
		}
		ps.Expression = p.Expression()
		return nil
	})
}

func (Modifiers) Deserialize(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	applySides(ctx, rec, obj, func(ps *document.ParameterSettings, p host.Param) {
		if ps.Access != "" {
			if err := p.SetAccess(string(ps.Access)); err != nil {
				ctx.Warnf("%v", err)
			}
		}
		if ps.DataMapping != "" {
			if err := p.SetDataMapping(string(ps.DataMapping)); err != nil {
				ctx.Warnf("%v", err)
			}
		}
		for _, f := range modifierFlags {
			if v := *f.field(ps); v != nil {
				p.SetFlag(f.mod, *v)
			}
		}
		if ps.Expression != "" {
			p.SetExpression(ps.Expression)
		}
	})
	return nil
}

// Internalized owns persistent data trees.
type Internalized struct{}

func (Internalized) Name() string                      { return "internalized" }
func (Internalized) Priority() int                     { return handler.PriorityStructural }
func (Internalized) CanSerialize(obj host.Object) bool { return hasParams(obj) }

func (Internalized) CanDeserialize(rec *document.Record) bool {
	for _, side := range [][]document.ParameterSettings{rec.Inputs, rec.Outputs} {
		for _, ps := range side {
			if ps.InternalizedData != nil {
				return true
			}
		}
	}
	return false
}

func (Internalized) Serialize(ctx *handler.SerializeContext, obj host.Object) (*document.Record, error) {
	rec, err := serializeSides(obj, func(p host.Param, ps *document.ParameterSettings) error {
		enc, err := datatree.Encode(p.PersistentData(), ctx.Codec)
		if err != nil {
			return err
		}
		ps.InternalizedData = enc
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Only parameters that carry data are worth a settings entry.
	rec.Inputs = withData(rec.Inputs)
	rec.Outputs = withData(rec.Outputs)
	return rec, nil
}

func withData(params []document.ParameterSettings) []document.ParameterSettings {
	var out []document.ParameterSettings
	for _, ps := range params {
		if ps.InternalizedData != nil {
			out = append(out, ps)
		}
	}
	return out
}

func (Internalized) Deserialize(ctx *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
	applySides(ctx, rec, obj, func(ps *document.ParameterSettings, p host.Param) {
		if ps.InternalizedData == nil {
			return
		}
		tree, err := datatree.Decode(ps.InternalizedData, ctx.Codec)
		if err != nil {
			ctx.Warnf("parameter %s: %v", ps.ParameterName, err)
			return
		}
		p.SetPersistentData(tree)
	})
	return nil
}
