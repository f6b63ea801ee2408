package datatree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path addresses one branch of a tree.
type Path []int

// Root is the path used when none is given.
func Root() Path { return Path{0} }

// String renders p as "{i;j;k}".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return "{" + strings.Join(parts, ";") + "}"
}

// Compare orders paths element by element; a prefix sorts first.
func (p Path) Compare(o Path) int {
	return slices.Compare(p, o)
}

// ParsePath parses "{i;j;k}". Empty, unbracketed and "{}" strings are the
// root path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	inner, ok := strings.CutPrefix(s, "{")
	if !ok {
		return Root(), nil
	}
	inner, ok = strings.CutSuffix(inner, "}")
	if !ok {
		return Root(), nil
	}
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Root(), nil
	}

	parts := strings.Split(inner, ";")
	p := make(Path, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrMalformedPath, s, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w %q: negative index %d", ErrMalformedPath, s, n)
		}
		p[i] = n
	}
	return p, nil
}
