package runtime

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/aretw0/canvasdoc/pkg/datatree"
	"github.com/aretw0/canvasdoc/pkg/document"
)

// merger folds handler patches into one record, first value wins.
// A zero value in a patch means "not set" and never conflicts.
type merger struct {
	rec    *document.Record
	owners map[string]string // field -> handler that set it
}

func newMerger() *merger {
	return &merger{rec: &document.Record{}, owners: make(map[string]string)}
}

func (m *merger) merge(from string, p *document.Record) error {
	if err := mergeField(m, from, "Name", &m.rec.Name, p.Name); err != nil {
		return err
	}
	if err := mergeField(m, from, "NickName", &m.rec.NickName, p.NickName); err != nil {
		return err
	}
	if err := mergeField(m, from, "ComponentGUID", &m.rec.ComponentGUID, p.ComponentGUID); err != nil {
		return err
	}
	if err := mergeField(m, from, "InstanceGUID", &m.rec.InstanceGUID, p.InstanceGUID); err != nil {
		return err
	}
	if err := mergeField(m, from, "Pivot", &m.rec.Pivot, p.Pivot); err != nil {
		return err
	}
	if err := m.mergeState(from, p.State); err != nil {
		return err
	}

	var err error
	if m.rec.Inputs, err = m.mergeParams(from, "Inputs", m.rec.Inputs, p.Inputs); err != nil {
		return err
	}
	if m.rec.Outputs, err = m.mergeParams(from, "Outputs", m.rec.Outputs, p.Outputs); err != nil {
		return err
	}

	m.rec.Errors = appendUnique(m.rec.Errors, p.Errors)
	m.rec.Warnings = appendUnique(m.rec.Warnings, p.Warnings)
	m.rec.Remarks = appendUnique(m.rec.Remarks, p.Remarks)
	return nil
}

func mergeField[T comparable](m *merger, from, field string, dst *T, src T) error {
	var zero T
	switch {
	case src == zero, *dst == src:
		return nil
	case *dst == zero:
		*dst = src
		m.owners[field] = from
		return nil
	default:
		return m.conflict(from, field, *dst, src)
	}
}

func mergeFlag(m *merger, from, field string, dst **bool, src *bool) error {
	switch {
	case src == nil:
		return nil
	case *dst == nil:
		v := *src
		*dst = &v
		m.owners[field] = from
		return nil
	case **dst == *src:
		return nil
	default:
		return m.conflict(from, field, **dst, *src)
	}
}

func (m *merger) conflict(from, field string, existing, rejected any) error {
	return &HandlerConflictError{
		Field:    field,
		Existing: existing,
		Rejected: rejected,
		Owner:    m.owners[field],
		Handler:  from,
	}
}

func (m *merger) mergeState(from string, src *document.ComponentState) error {
	if src == nil {
		return nil
	}
	if m.rec.State == nil {
		m.rec.State = &document.ComponentState{}
	}
	dst := m.rec.State
	if err := mergeFlag(m, from, "State.Locked", &dst.Locked, src.Locked); err != nil {
		return err
	}
	if err := mergeFlag(m, from, "State.Hidden", &dst.Hidden, src.Hidden); err != nil {
		return err
	}
	if err := mergeFlag(m, from, "State.Selected", &dst.Selected, src.Selected); err != nil {
		return err
	}

	keys := make([]string, 0, len(src.Extensions))
	for k := range src.Extensions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := src.Extensions[k]
		field := fmt.Sprintf("State.Extensions[%s]", k)
		existing, ok := dst.Extensions[k]
		switch {
		case !ok:
			if dst.Extensions == nil {
				dst.Extensions = make(map[string]any)
			}
			dst.Extensions[k] = v
			m.owners[field] = from
		case !reflect.DeepEqual(existing, v):
			return m.conflict(from, field, existing, v)
		}
	}
	return nil
}

// mergeParams matches entries by ParameterName. New names are appended in
// the order the patch lists them.
func (m *merger) mergeParams(from, side string, dst, src []document.ParameterSettings) ([]document.ParameterSettings, error) {
	for _, p := range src {
		i := slices.IndexFunc(dst, func(d document.ParameterSettings) bool {
			return d.ParameterName == p.ParameterName
		})
		if i < 0 {
			dst = append(dst, document.ParameterSettings{ParameterName: p.ParameterName})
			i = len(dst) - 1
		}
		if err := m.mergeParam(from, fmt.Sprintf("%s[%s]", side, p.ParameterName), &dst[i], &p); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (m *merger) mergeParam(from, prefix string, dst, src *document.ParameterSettings) error {
	if err := mergeField(m, from, prefix+".NickName", &dst.NickName, src.NickName); err != nil {
		return err
	}
	if err := mergeField(m, from, prefix+".Access", &dst.Access, src.Access); err != nil {
		return err
	}
	if err := mergeField(m, from, prefix+".DataMapping", &dst.DataMapping, src.DataMapping); err != nil {
		return err
	}
	flags := []struct {
		name     string
		dst, src **bool
	}{
		{"Reverse", &dst.Reverse, &src.Reverse},
		{"Simplify", &dst.Simplify, &src.Simplify},
		{"Invert", &dst.Invert, &src.Invert},
		{"Unitize", &dst.Unitize, &src.Unitize},
		{"Principal", &dst.Principal, &src.Principal},
		{"Optional", &dst.Optional, &src.Optional},
	}
	for _, f := range flags {
		if err := mergeFlag(m, from, prefix+"."+f.name, f.dst, *f.src); err != nil {
			return err
		}
	}
	if err := mergeField(m, from, prefix+".Expression", &dst.Expression, src.Expression); err != nil {
		return err
	}

	field := prefix + ".InternalizedData"
	switch {
	case src.InternalizedData == nil:
	case dst.InternalizedData == nil:
		dst.InternalizedData = document.CloneEncoded(src.InternalizedData)
		m.owners[field] = from
	case !encodedEqual(dst.InternalizedData, src.InternalizedData):
		return m.conflict(from, field, flatten(dst.InternalizedData), flatten(src.InternalizedData))
	}
	return nil
}

func encodedEqual(a, b *datatree.Encoded) bool {
	return slices.Equal(flatten(a), flatten(b))
}

// flatten lists "path/key=value" entries in order, for comparison and messages.
func flatten(enc *datatree.Encoded) []string {
	var out []string
	for p := enc.Oldest(); p != nil; p = p.Next() {
		for it := p.Value.Oldest(); it != nil; it = it.Next() {
			out = append(out, p.Key+"/"+it.Key+"="+it.Value)
		}
	}
	return out
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

// dropOmitted removes parameters a handler asked to leave out.
func dropOmitted(params []document.ParameterSettings, omitted func(string) bool) []document.ParameterSettings {
	out := params[:0]
	for _, p := range params {
		if !omitted(p.ParameterName) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
