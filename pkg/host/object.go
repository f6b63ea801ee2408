package host

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/datatree"
)

// Kind discriminates live objects.
type Kind int

const (
	KindComponent Kind = iota // A node with input and output parameters
	KindParameter             // A floating parameter such as a slider or panel
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindParameter:
		return "parameter"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Side selects the input or output parameters of an object.
type Side int

const (
	Input Side = iota
	Output
)

func (s Side) String() string {
	if s == Input {
		return "input"
	}
	return "output"
}

// Modifier names a boolean parameter flag.
type Modifier int

const (
	Reverse Modifier = iota
	Simplify
	Invert
	Unitize
	Principal
	Optional
)

// Object is one live node on a canvas.
type Object interface {
	Kind() Kind
	// Type is a namespaced type key such as "gh.numberslider".
	Type() string

	ComponentGUID() uuid.UUID
	InstanceGUID() uuid.UUID
	SetInstanceGUID(uuid.UUID)

	Name() string
	NickName() string
	SetNickName(string)

	Pivot() (x, y float64)
	SetPivot(x, y float64)

	Locked() bool
	SetLocked(bool)
	Hidden() bool
	SetHidden(bool)
	Selected() bool
	SetSelected(bool)

	Params(Side) []Param

	// Messages returns the runtime diagnostics of the last solution.
	Messages() (errors, warnings, remarks []string)

	Properties() PropertyBridge
}

// Param is one port of an object.
type Param interface {
	Name() string
	NickName() string
	SetNickName(string)

	// Access is "item", "list" or "tree".
	Access() string
	SetAccess(string) error
	// DataMapping is "none", "flatten" or "graft".
	DataMapping() string
	SetDataMapping(string) error

	Flag(Modifier) bool
	SetFlag(Modifier, bool)

	Expression() string
	SetExpression(string)

	// PersistentData returns the internalized values, or nil.
	PersistentData() *datatree.Tree
	SetPersistentData(*datatree.Tree)
}

// FindParam returns the parameter named name on the given side.
func FindParam(obj Object, side Side, name string) (Param, error) {
	for _, p := range obj.Params(side) {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q on %s", ErrParamNotFound, side, name, obj.Name())
}

// Wire connects an output of one object to an input of another.
type Wire struct {
	From      uuid.UUID
	FromParam string
	To        uuid.UUID
	ToParam   string
	// ToIndex is the position of the wire among the target's sources, or -1.
	ToIndex int
}

// Canvas holds live objects and their wiring.
type Canvas interface {
	Objects() []Object
	Wires() []Wire
	// Insert attaches obj. Hosts may reset some state on insertion.
	Insert(obj Object) error
	Connect(w Wire) error
}

// Factory builds empty objects for a component type.
type Factory interface {
	Create(componentGUID uuid.UUID, name string) (Object, error)
}
