package document

import (
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aretw0/canvasdoc/pkg/datatree"
)

// Input returns the input parameter with the given name.
func (r *Record) Input(name string) (*ParameterSettings, bool) {
	return find(r.Inputs, name)
}

// Output returns the output parameter with the given name.
func (r *Record) Output(name string) (*ParameterSettings, bool) {
	return find(r.Outputs, name)
}

func find(params []ParameterSettings, name string) (*ParameterSettings, bool) {
	for i := range params {
		if params[i].ParameterName == name {
			return &params[i], true
		}
	}
	return nil, false
}

// Extension returns the extension entry stored under key.
func (r *Record) Extension(key string) (any, bool) {
	if r.State == nil || r.State.Extensions == nil {
		return nil, false
	}
	v, ok := r.State.Extensions[key]
	return v, ok
}

// SetExtension stores v under key, creating the state as needed.
func (r *Record) SetExtension(key string, v any) {
	if r.State == nil {
		r.State = &ComponentState{}
	}
	if r.State.Extensions == nil {
		r.State.Extensions = make(map[string]any)
	}
	r.State.Extensions[key] = v
}

// AddWarning appends msg unless it is already present.
func (r *Record) AddWarning(msg string) {
	if !slices.Contains(r.Warnings, msg) {
		r.Warnings = append(r.Warnings, msg)
	}
}

// AddError appends msg unless it is already present.
func (r *Record) AddError(msg string) {
	if !slices.Contains(r.Errors, msg) {
		r.Errors = append(r.Errors, msg)
	}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	out := *r
	if r.State != nil {
		s := *r.State
		s.Locked = cloneFlag(s.Locked)
		s.Hidden = cloneFlag(s.Hidden)
		s.Selected = cloneFlag(s.Selected)
		s.Extensions = maps.Clone(s.Extensions)
		out.State = &s
	}
	out.Inputs = cloneParams(r.Inputs)
	out.Outputs = cloneParams(r.Outputs)
	out.Errors = slices.Clone(r.Errors)
	out.Warnings = slices.Clone(r.Warnings)
	out.Remarks = slices.Clone(r.Remarks)
	return &out
}

func cloneParams(in []ParameterSettings) []ParameterSettings {
	if in == nil {
		return nil
	}
	out := make([]ParameterSettings, len(in))
	for i, p := range in {
		p.Reverse = cloneFlag(p.Reverse)
		p.Simplify = cloneFlag(p.Simplify)
		p.Invert = cloneFlag(p.Invert)
		p.Unitize = cloneFlag(p.Unitize)
		p.Principal = cloneFlag(p.Principal)
		p.Optional = cloneFlag(p.Optional)
		p.InternalizedData = CloneEncoded(p.InternalizedData)
		out[i] = p
	}
	return out
}

func cloneFlag(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// CloneEncoded copies an encoded data tree.
func CloneEncoded(enc *datatree.Encoded) *datatree.Encoded {
	if enc == nil {
		return nil
	}
	out := orderedmap.New[string, *datatree.Items](enc.Len())
	for pair := enc.Oldest(); pair != nil; pair = pair.Next() {
		var items *datatree.Items
		if pair.Value != nil {
			items = orderedmap.New[string, string](pair.Value.Len())
			for it := pair.Value.Oldest(); it != nil; it = it.Next() {
				items.Set(it.Key, it.Value)
			}
		}
		out.Set(pair.Key, items)
	}
	return out
}
