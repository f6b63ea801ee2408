package datatree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/canvasdoc/pkg/datatree"
	"github.com/aretw0/canvasdoc/pkg/values"
)

func num(f float64) values.Value { return values.Value{Kind: values.KindNumber, Data: f} }
func text(s string) values.Value { return values.Value{Kind: values.KindText, Data: s} }

func items(pairs ...string) *datatree.Items {
	m := orderedmap.New[string, string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func TestDecodeOrdersByEmbeddedIndex(t *testing.T) {
	enc := orderedmap.New[string, *datatree.Items]()
	enc.Set("{0}", items(
		"{0}(1)", "number:2",
		"{0}(0)", "number:1",
	))

	tree, err := datatree.Decode(enc, values.Default())
	require.NoError(t, err)

	got, ok := tree.Get(datatree.Path{0})
	require.True(t, ok)
	assert.Equal(t, []values.Value{num(1), num(2)}, got)
}

func TestDecodeOrdersManyItems(t *testing.T) {
	enc := orderedmap.New[string, *datatree.Items]()
	enc.Set("{0;1}", items(
		"{0;1}(10)", "int:10",
		"{0;1}(2)", "int:2",
		"{0;1}(7)", "int:7",
	))

	tree, err := datatree.Decode(enc, values.Default())
	require.NoError(t, err)
	got, _ := tree.Get(datatree.Path{0, 1})
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].Data)
	assert.Equal(t, int64(7), got[1].Data)
	assert.Equal(t, int64(10), got[2].Data)
}

func TestEncodeRoundTrip(t *testing.T) {
	tree := datatree.New()
	tree.Append(datatree.Path{1}, values.Value{Kind: values.KindBool, Data: true})
	tree.Append(datatree.Path{0}, num(1.5), values.Value{Kind: values.KindPoint, Data: values.Point3{Z: 1}})
	tree.Append(datatree.Path{0, 2}, text("hello"))

	enc, err := datatree.Encode(tree, values.Default())
	require.NoError(t, err)
	require.NotNil(t, enc)

	var keys []string
	for pair := enc.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"{0}", "{0;2}", "{1}"}, keys)

	root, _ := enc.Get("{0}")
	v, ok := root.Get("{0}(1)")
	require.True(t, ok)
	assert.Equal(t, "pointXYZ:0,0,1", v)

	back, err := datatree.Decode(enc, values.Default())
	require.NoError(t, err)
	assert.Equal(t, tree.Paths(), back.Paths())
	for _, p := range tree.Paths() {
		want, _ := tree.Get(p)
		got, _ := back.Get(p)
		assert.Equal(t, want, got, "path %s", p)
	}
}

func TestEncodeEmptyTreeIsNil(t *testing.T) {
	enc, err := datatree.Encode(datatree.New(), values.Default())
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = datatree.Encode(nil, values.Default())
	require.NoError(t, err)
	assert.Nil(t, enc)
}

func TestEncodeDropsEmptyText(t *testing.T) {
	tree := datatree.New()
	tree.Append(datatree.Path{0}, text(""), num(3), text(""), text("x"))
	tree.Append(datatree.Path{1}, text(""))

	enc, err := datatree.Encode(tree, values.Default())
	require.NoError(t, err)
	require.Equal(t, 1, enc.Len())

	root, ok := enc.Get("{0}")
	require.True(t, ok)
	assert.Equal(t, 2, root.Len())
	v, _ := root.Get("{0}(0)")
	assert.Equal(t, "number:3", v)
	v, _ = root.Get("{0}(1)")
	assert.Equal(t, "text:x", v)

	onlyEmpty := datatree.New()
	onlyEmpty.Append(datatree.Path{0}, text(""))
	enc, err = datatree.Encode(onlyEmpty, values.Default())
	require.NoError(t, err)
	assert.Nil(t, enc)
}

func TestDecodeRootAliases(t *testing.T) {
	for _, key := range []string{"", "{}", "0", "{ }"} {
		enc := orderedmap.New[string, *datatree.Items]()
		enc.Set(key, items("(0)", "int:1"))

		tree, err := datatree.Decode(enc, values.Default())
		require.NoError(t, err, "key %q", key)
		got, ok := tree.Get(datatree.Root())
		require.True(t, ok, "key %q", key)
		assert.Len(t, got, 1)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		key  string
		val  string
		want error
	}{
		{"no parens", "{0}", "{0}0", "int:1", datatree.ErrMalformedKey},
		{"non-numeric index", "{0}", "{0}(a)", "int:1", datatree.ErrMalformedKey},
		{"negative index", "{0}", "{0}(-1)", "int:1", datatree.ErrMalformedKey},
		{"bad path", "{0;x}", "{0;x}(0)", "int:1", datatree.ErrMalformedPath},
		{"negative path", "{-1}", "{-1}(0)", "int:1", datatree.ErrMalformedPath},
		{"bad value", "{0}", "{0}(0)", "pointXYZ:1,2", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := orderedmap.New[string, *datatree.Items]()
			enc.Set(tt.path, items(tt.key, tt.val))
			_, err := datatree.Decode(enc, values.Default())
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestDecodeDuplicateIndex(t *testing.T) {
	enc := orderedmap.New[string, *datatree.Items]()
	enc.Set("{0}", items("{0}(0)", "int:1", " {0}(0)", "int:2"))
	_, err := datatree.Decode(enc, values.Default())
	assert.ErrorIs(t, err, datatree.ErrDuplicateIndex)
}

func TestDecodeDuplicatePath(t *testing.T) {
	enc := orderedmap.New[string, *datatree.Items]()
	enc.Set("{0}", items("{0}(0)", "int:1"))
	enc.Set("{}", items("{}(0)", "int:2"))
	_, err := datatree.Decode(enc, values.Default())
	assert.ErrorIs(t, err, datatree.ErrDuplicatePath)
}

func TestEncodedJSONPreservesOrder(t *testing.T) {
	in := `{"{0}":{"{0}(1)":"int:2","{0}(0)":"int:1"}}`

	enc := orderedmap.New[string, *datatree.Items]()
	require.NoError(t, json.Unmarshal([]byte(in), enc))

	out, err := json.Marshal(enc)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	tree, err := datatree.Decode(enc, values.Default())
	require.NoError(t, err)
	got, _ := tree.Get(datatree.Root())
	assert.Equal(t, int64(1), got[0].Data)
}

func TestEncodedYAML(t *testing.T) {
	tree := datatree.New()
	tree.Append(datatree.Root(), num(0.25), num(4))

	enc, err := datatree.Encode(tree, values.Default())
	require.NoError(t, err)

	data, err := yaml.Marshal(enc)
	require.NoError(t, err)

	back := orderedmap.New[string, *datatree.Items]()
	require.NoError(t, yaml.Unmarshal(data, back))

	decoded, err := datatree.Decode(back, values.Default())
	require.NoError(t, err)
	got, _ := decoded.Get(datatree.Root())
	assert.Equal(t, []values.Value{num(0.25), num(4)}, got)
}

func TestEmptyPathIsRoot(t *testing.T) {
	tree := datatree.New()
	tree.Append(datatree.Path{}, num(1))
	tree.Append(datatree.Path{0}, num(2))

	assert.Equal(t, 1, tree.Len())
	got, ok := tree.Get(datatree.Path{})
	require.True(t, ok)
	assert.Equal(t, []values.Value{num(1), num(2)}, got)

	enc, err := datatree.Encode(tree, values.Default())
	require.NoError(t, err)
	_, ok = enc.Get("{}")
	assert.False(t, ok)

	back, err := datatree.Decode(enc, values.Default())
	require.NoError(t, err)
	got, ok = back.Get(datatree.Root())
	require.True(t, ok)
	assert.Equal(t, []values.Value{num(1), num(2)}, got)
}
