package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/datatree"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// Validate checks d against the document invariants. Internalized data is
// decoded with codec; a nil codec uses values.Default().
// It returns nil or an *AggregateError.
func Validate(d *Document, codec *values.Registry) error {
	if d == nil {
		return &AggregateError{Errors: []error{&ValidationError{Field: "document", Reason: "nil"}}}
	}
	if codec == nil {
		codec = values.Default()
	}

	v := &validator{codec: codec}
	if d.SchemaVersion == "" {
		v.fail("schema_version", "required", nil)
	}

	ids := make(map[uuid.UUID]*Record, len(d.Components))
	for i := range d.Components {
		rec := &d.Components[i]
		field := fmt.Sprintf("components[%d]", i)
		v.record(field, rec)

		if rec.InstanceGUID == uuid.Nil {
			continue
		}
		if _, dup := ids[rec.InstanceGUID]; dup {
			v.fail(field+".instance_guid", "duplicate instance id", rec.InstanceGUID)
			continue
		}
		ids[rec.InstanceGUID] = rec
	}

	for i, c := range d.Connections {
		field := fmt.Sprintf("connections[%d]", i)
		v.endpoint(field+".from", c.From, ids, func(r *Record) []ParameterSettings { return r.Outputs })
		v.endpoint(field+".to", c.To, ids, func(r *Record) []ParameterSettings { return r.Inputs })
	}

	groups := make(map[uuid.UUID]bool, len(d.Groups))
	for i, g := range d.Groups {
		field := fmt.Sprintf("groups[%d]", i)
		if g.InstanceGUID == uuid.Nil {
			v.fail(field+".instance_guid", "required", nil)
		} else if groups[g.InstanceGUID] || ids[g.InstanceGUID] != nil {
			v.fail(field+".instance_guid", "duplicate instance id", g.InstanceGUID)
		}
		groups[g.InstanceGUID] = true
		if g.Color != "" {
			if _, err := codec.Decode(g.Color); err != nil {
				v.fail(field+".color", err.Error(), g.Color)
			}
		}
		for j, m := range g.Members {
			if ids[m] == nil {
				v.fail(fmt.Sprintf("%s.members[%d]", field, j), "unknown component", m)
			}
		}
	}

	if len(v.errs) > 0 {
		return &AggregateError{Errors: v.errs}
	}
	return nil
}

type validator struct {
	codec *values.Registry
	errs  []error
}

func (v *validator) fail(field, reason string, value any) {
	v.errs = append(v.errs, &ValidationError{Field: field, Reason: reason, Value: value})
}

func (v *validator) record(field string, rec *Record) {
	if rec.Name == "" {
		v.fail(field+".name", "required", nil)
	}
	if rec.InstanceGUID == uuid.Nil {
		v.fail(field+".instance_guid", "required", nil)
	}
	v.params(field+".inputs", rec.Inputs)
	v.params(field+".outputs", rec.Outputs)
}

func (v *validator) params(field string, params []ParameterSettings) {
	seen := make(map[string]bool, len(params))
	for i, p := range params {
		pf := fmt.Sprintf("%s[%d]", field, i)
		switch {
		case p.ParameterName == "":
			v.fail(pf+".parameter_name", "required", nil)
		case seen[p.ParameterName]:
			v.fail(pf+".parameter_name", "duplicate parameter name", p.ParameterName)
		}
		seen[p.ParameterName] = true

		if !p.Access.Valid() {
			v.fail(pf+".access", "unknown access mode", p.Access)
		}
		if !p.DataMapping.Valid() {
			v.fail(pf+".data_mapping", "unknown data mapping", p.DataMapping)
		}
		if p.InternalizedData != nil {
			if _, err := datatree.Decode(p.InternalizedData, v.codec); err != nil {
				v.fail(pf+".internalized_data", err.Error(), nil)
			}
		}
	}
}

// endpoint checks that e resolves. Parameter names are only checked when the
// record lists parameters on that side.
func (v *validator) endpoint(field string, e Endpoint, ids map[uuid.UUID]*Record, side func(*Record) []ParameterSettings) {
	rec, ok := ids[e.InstanceGUID]
	if !ok {
		v.fail(field+".instance_guid", "unknown component", e.InstanceGUID)
		return
	}
	if e.ParamIndex != nil && *e.ParamIndex < 0 {
		v.fail(field+".param_index", "negative index", *e.ParamIndex)
	}
	params := side(rec)
	if e.ParamName == "" || len(params) == 0 {
		return
	}
	if _, ok := find(params, e.ParamName); !ok {
		v.fail(field+".param_name", "no such parameter on "+rec.Name, e.ParamName)
	}
}
