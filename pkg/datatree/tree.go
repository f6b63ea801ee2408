package datatree

import (
	"slices"

	"github.com/aretw0/canvasdoc/pkg/values"
)

// Tree maps paths to ordered lists of values.
// The zero value is not usable; call New.
type Tree struct {
	branches map[string]*branch
}

type branch struct {
	path  Path
	items []values.Value
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{branches: make(map[string]*branch)}
}

// Append adds vs to the end of the list at p, creating the branch if needed.
func (t *Tree) Append(p Path, vs ...values.Value) {
	b := t.branch(p)
	b.items = append(b.items, vs...)
}

// Set replaces the list at p.
func (t *Tree) Set(p Path, vs []values.Value) {
	b := t.branch(p)
	b.items = slices.Clone(vs)
}

// Get returns a copy of the list at p.
func (t *Tree) Get(p Path) ([]values.Value, bool) {
	b, ok := t.branches[canonical(p).String()]
	if !ok {
		return nil, false
	}
	return slices.Clone(b.items), true
}

// Paths returns every path in ascending order.
func (t *Tree) Paths() []Path {
	out := make([]Path, 0, len(t.branches))
	for _, b := range t.branches {
		out = append(out, slices.Clone(b.path))
	}
	slices.SortFunc(out, Path.Compare)
	return out
}

// Len returns the number of branches.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.branches)
}

// LeafCount returns the total number of values across all branches.
func (t *Tree) LeafCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, b := range t.branches {
		n += len(b.items)
	}
	return n
}

// IsEmpty reports whether the tree holds no values.
func (t *Tree) IsEmpty() bool {
	return t.LeafCount() == 0
}

func (t *Tree) branch(p Path) *branch {
	p = canonical(p)
	key := p.String()
	b, ok := t.branches[key]
	if !ok {
		b = &branch{path: slices.Clone(p)}
		t.branches[key] = b
	}
	return b
}

// canonical maps the empty path to the root, matching ParsePath("{}").
func canonical(p Path) Path {
	if len(p) == 0 {
		return Root()
	}
	return p
}
