package datatree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aretw0/canvasdoc/pkg/values"
)

// Items maps item keys ("{0}(3)") to encoded values for one path.
type Items = orderedmap.OrderedMap[string, string]

// Encoded is the persisted form of a Tree: path string to Items.
type Encoded = orderedmap.OrderedMap[string, *Items]

// ItemKey renders the key for leaf index i at p.
func ItemKey(p Path, i int) string {
	return p.String() + "(" + strconv.Itoa(i) + ")"
}

// Encode flattens t with codec. It returns nil when nothing would be stored.
// Paths are written in ascending order and the kept leaves of each path are
// numbered from zero.
func Encode(t *Tree, codec *values.Registry) (*Encoded, error) {
	if t.IsEmpty() {
		return nil, nil
	}

	out := orderedmap.New[string, *Items]()
	for _, p := range t.Paths() {
		leaves, _ := t.Get(p)
		items := orderedmap.New[string, string]()
		for _, v := range leaves {
			s, err := codec.EncodeAs(v.Kind, v.Data)
			if err != nil {
				return nil, fmt.Errorf("path %s: %w", p, err)
			}
			if s == values.EmptyText {
				continue
			}
			items.Set(ItemKey(p, items.Len()), s)
		}
		if items.Len() > 0 {
			out.Set(p.String(), items)
		}
	}
	if out.Len() == 0 {
		return nil, nil
	}
	return out, nil
}

// Decode rebuilds a tree from its encoded form. Items are ordered by the
// index embedded in their keys, never by map order.
func Decode(enc *Encoded, codec *values.Registry) (*Tree, error) {
	t := New()
	if enc == nil {
		return t, nil
	}

	for pair := enc.Oldest(); pair != nil; pair = pair.Next() {
		p, err := ParsePath(pair.Key)
		if err != nil {
			return nil, err
		}
		if _, exists := t.branches[p.String()]; exists {
			return nil, fmt.Errorf("%w: %q resolves to %s", ErrDuplicatePath, pair.Key, p)
		}
		leaves, err := decodeItems(pair.Value, codec)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", p, err)
		}
		if len(leaves) > 0 {
			t.Set(p, leaves)
		}
	}
	return t, nil
}

type indexed struct {
	index int
	value values.Value
}

func decodeItems(items *Items, codec *values.Registry) ([]values.Value, error) {
	if items == nil {
		return nil, nil
	}

	seen := make(map[int]bool, items.Len())
	list := make([]indexed, 0, items.Len())
	for pair := items.Oldest(); pair != nil; pair = pair.Next() {
		idx, err := parseItemIndex(pair.Key)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: %d in %q", ErrDuplicateIndex, idx, pair.Key)
		}
		seen[idx] = true

		if pair.Value == values.EmptyText {
			continue
		}
		v, err := codec.Decode(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", pair.Key, err)
		}
		list = append(list, indexed{index: idx, value: v})
	}

	slices.SortFunc(list, func(a, b indexed) int { return a.index - b.index })
	out := make([]values.Value, len(list))
	for i, it := range list {
		out[i] = it.value
	}
	return out, nil
}

// parseItemIndex extracts n from "<path>(n)".
func parseItemIndex(key string) (int, error) {
	body, ok := strings.CutSuffix(strings.TrimSpace(key), ")")
	if !ok {
		return 0, fmt.Errorf("%w %q: missing ')'", ErrMalformedKey, key)
	}
	open := strings.LastIndexByte(body, '(')
	if open < 0 {
		return 0, fmt.Errorf("%w %q: missing '('", ErrMalformedKey, key)
	}
	if _, err := ParsePath(body[:open]); err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrMalformedKey, key, err)
	}
	idx, err := strconv.Atoi(body[open+1:])
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrMalformedKey, key, err)
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w %q: negative index", ErrMalformedKey, key)
	}
	return idx, nil
}
