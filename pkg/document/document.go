package document

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Option configures a new Document.
type Option func(*Document)

// WithGenerator stamps the producing tool into the metadata.
func WithGenerator(name, version string) Option {
	return func(d *Document) {
		d.meta().Generator = name
		d.meta().GeneratorVersion = version
	}
}

// WithCreated sets the creation timestamp.
func WithCreated(t time.Time) Option {
	return func(d *Document) {
		t = t.UTC()
		d.meta().Created = &t
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(d *Document) {
		d.meta().Title = title
	}
}

// WithSchemaVersion overrides the schema version stamp. An empty version
// keeps the default.
func WithSchemaVersion(v string) Option {
	return func(d *Document) {
		if v != "" {
			d.SchemaVersion = v
		}
	}
}

// New creates an empty document at the current schema version.
func New(opts ...Option) *Document {
	d := &Document{
		SchemaVersion: SchemaVersion,
		Components:    []Record{},
		Connections:   []Connection{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) meta() *Metadata {
	if d.Metadata == nil {
		d.Metadata = &Metadata{}
	}
	return d.Metadata
}

// Refresh recomputes the metadata counts.
func (d *Document) Refresh() {
	m := d.meta()
	m.ComponentCount = len(d.Components)
	m.ConnectionCount = len(d.Connections)
	m.GroupCount = len(d.Groups)
}

// Component returns the record with the given instance id.
func (d *Document) Component(id uuid.UUID) (*Record, bool) {
	for i := range d.Components {
		if d.Components[i].InstanceGUID == id {
			return &d.Components[i], true
		}
	}
	return nil, false
}

// Clone returns a copy that shares no mutable slices or maps with d.
// Extension values are copied one level deep.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	if d.Metadata != nil {
		m := *d.Metadata
		if m.Created != nil {
			t := *m.Created
			m.Created = &t
		}
		out.Metadata = &m
	}
	out.Components = make([]Record, len(d.Components))
	for i := range d.Components {
		out.Components[i] = *d.Components[i].Clone()
	}
	out.Connections = make([]Connection, len(d.Connections))
	for i, c := range d.Connections {
		out.Connections[i] = Connection{From: c.From.clone(), To: c.To.clone()}
	}
	if d.Groups != nil {
		out.Groups = make([]Group, len(d.Groups))
		for i, g := range d.Groups {
			g.Members = append([]uuid.UUID(nil), g.Members...)
			out.Groups[i] = g
		}
	}
	out.Extensions = maps.Clone(d.Extensions)
	return &out
}

func (e Endpoint) clone() Endpoint {
	if e.ParamIndex != nil {
		i := *e.ParamIndex
		e.ParamIndex = &i
	}
	return e
}
