package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/datatree"
)

// SchemaVersion is written into every new document.
const SchemaVersion = "1.0.0"

// Access defines how a parameter consumes its data.
type Access string

const (
	AccessItem Access = "item"
	AccessList Access = "list"
	AccessTree Access = "tree"
)

// Valid reports whether a is empty or a known access mode.
func (a Access) Valid() bool {
	switch a {
	case "", AccessItem, AccessList, AccessTree:
		return true
	}
	return false
}

// DataMapping defines the structural operation applied to parameter data.
type DataMapping string

const (
	MappingNone    DataMapping = "none"
	MappingFlatten DataMapping = "flatten"
	MappingGraft   DataMapping = "graft"
)

// Valid reports whether m is empty or a known mapping.
func (m DataMapping) Valid() bool {
	switch m {
	case "", MappingNone, MappingFlatten, MappingGraft:
		return true
	}
	return false
}

// Point2 is a canvas location.
type Point2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ComponentState carries UI flags and handler extensions.
// A nil flag means the handler that owns it did not run or had nothing to say.
type ComponentState struct {
	Locked   *bool `json:"locked,omitempty" yaml:"locked,omitempty"`
	Hidden   *bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Selected *bool `json:"selected,omitempty" yaml:"selected,omitempty"`

	// Extensions holds kind-specific entries keyed by a namespaced string
	// such as "gh.numberslider".
	Extensions map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// ParameterSettings describes one input or output port.
type ParameterSettings struct {
	// ParameterName is the merge identity within one side of a record.
	ParameterName string      `json:"parameter_name" yaml:"parameter_name"`
	NickName      string      `json:"nick_name,omitempty" yaml:"nick_name,omitempty"`
	Access        Access      `json:"access,omitempty" yaml:"access,omitempty"`
	DataMapping   DataMapping `json:"data_mapping,omitempty" yaml:"data_mapping,omitempty"`

	Reverse   *bool `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	Simplify  *bool `json:"simplify,omitempty" yaml:"simplify,omitempty"`
	Invert    *bool `json:"invert,omitempty" yaml:"invert,omitempty"`
	Unitize   *bool `json:"unitize,omitempty" yaml:"unitize,omitempty"`
	Principal *bool `json:"principal,omitempty" yaml:"principal,omitempty"`
	Optional  *bool `json:"optional,omitempty" yaml:"optional,omitempty"`

	Expression       string            `json:"expression,omitempty" yaml:"expression,omitempty"`
	InternalizedData *datatree.Encoded `json:"internalized_data,omitempty" yaml:"internalized_data,omitempty"`
}

// Record is the serialized form of one canvas node.
type Record struct {
	Name          string    `json:"name" yaml:"name"`
	NickName      string    `json:"nick_name,omitempty" yaml:"nick_name,omitempty"`
	ComponentGUID uuid.UUID `json:"component_guid" yaml:"component_guid"`
	InstanceGUID  uuid.UUID `json:"instance_guid" yaml:"instance_guid"`
	Pivot         Point2    `json:"pivot" yaml:"pivot"`

	State *ComponentState `json:"state,omitempty" yaml:"state,omitempty"`

	Inputs  []ParameterSettings `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []ParameterSettings `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Remarks  []string `json:"remarks,omitempty" yaml:"remarks,omitempty"`
}

// Endpoint names one end of a wire.
type Endpoint struct {
	InstanceGUID uuid.UUID `json:"instance_guid" yaml:"instance_guid"`
	ParamName    string    `json:"param_name,omitempty" yaml:"param_name,omitempty"`
	ParamIndex   *int      `json:"param_index,omitempty" yaml:"param_index,omitempty"`
}

// Connection is a wire from an output to an input.
type Connection struct {
	From Endpoint `json:"from" yaml:"from"`
	To   Endpoint `json:"to" yaml:"to"`
}

// Group is a named set of components.
type Group struct {
	InstanceGUID uuid.UUID   `json:"instance_guid" yaml:"instance_guid"`
	Name         string      `json:"name,omitempty" yaml:"name,omitempty"`
	Color        string      `json:"color,omitempty" yaml:"color,omitempty"` // argb-encoded
	Members      []uuid.UUID `json:"members" yaml:"members"`
}

// Metadata is descriptive and never authoritative.
type Metadata struct {
	Generator        string     `json:"generator,omitempty" yaml:"generator,omitempty"`
	GeneratorVersion string     `json:"generator_version,omitempty" yaml:"generator_version,omitempty"`
	Title            string     `json:"title,omitempty" yaml:"title,omitempty"`
	Author           string     `json:"author,omitempty" yaml:"author,omitempty"`
	Created          *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	ComponentCount   int        `json:"component_count" yaml:"component_count"`
	ConnectionCount  int        `json:"connection_count" yaml:"connection_count"`
	GroupCount       int        `json:"group_count" yaml:"group_count"`
}

// Document is the top-level container.
type Document struct {
	SchemaVersion string       `json:"schema_version" yaml:"schema_version"`
	Metadata      *Metadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Components    []Record     `json:"components" yaml:"components"`
	Connections   []Connection `json:"connections" yaml:"connections"`
	Groups        []Group      `json:"groups,omitempty" yaml:"groups,omitempty"`

	// Extensions holds document-level data owned by tools rather than
	// handlers, such as a store envelope.
	Extensions map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Flag returns a pointer to b.
func Flag(b bool) *bool { return &b }
