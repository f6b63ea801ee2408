package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canvasdoc/pkg/datatree"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/ports"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// SampleDocument builds a small two-component document with a wire between
// them, internalized data and an extension entry.
func SampleDocument(t *testing.T) *document.Document {
	t.Helper()

	tree := datatree.New()
	tree.Append(datatree.Root(), values.Value{Kind: values.KindNumber, Data: 2.5})
	tree.Append(datatree.Root(), values.Value{Kind: values.KindPoint, Data: values.Point3{X: 1, Y: 2, Z: 3}})
	enc, err := datatree.Encode(tree, values.Default())
	require.NoError(t, err)

	slider := document.Record{
		Name:          "Number Slider",
		ComponentGUID: uuid.MustParse("57da07bd-ecab-415d-9d86-af36d7073abc"),
		InstanceGUID:  uuid.New(),
		Pivot:         document.Point2{X: 10, Y: 20},
		Outputs:       []document.ParameterSettings{{ParameterName: "Number", Access: document.AccessItem}},
	}
	slider.SetExtension("gh.numberslider", map[string]any{"value": "0.5<0~1>", "decimals": 2})

	add := document.Record{
		Name:          "Addition",
		NickName:      "sum",
		ComponentGUID: uuid.MustParse("a0d62394-a118-422d-abb3-6af115c75b25"),
		InstanceGUID:  uuid.New(),
		Pivot:         document.Point2{X: 120, Y: 20},
		Inputs: []document.ParameterSettings{
			{ParameterName: "A", Access: document.AccessItem},
			{ParameterName: "B", Access: document.AccessItem, InternalizedData: enc},
		},
		Outputs: []document.ParameterSettings{{ParameterName: "Result", Access: document.AccessItem}},
	}

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := document.New(document.WithGenerator("canvasdoc-tests", "0.0.0"), document.WithCreated(created))
	doc.Components = append(doc.Components, slider, add)
	doc.Connections = append(doc.Connections, document.Connection{
		From: document.Endpoint{InstanceGUID: slider.InstanceGUID, ParamName: "Number"},
		To:   document.Endpoint{InstanceGUID: add.InstanceGUID, ParamName: "A"},
	})
	doc.Refresh()
	return doc
}

// RunDocumentStoreContract verifies that store honours ports.DocumentStore.
// The store should be empty when the suite starts.
func RunDocumentStoreContract(t *testing.T, store ports.DocumentStore) {
	t.Helper()
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := SampleDocument(t)
		require.NoError(t, store.Save(ctx, id, doc))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		require.Len(t, loaded.Components, 2)
		assert.Equal(t, doc.SchemaVersion, loaded.SchemaVersion)
		assert.Equal(t, doc.Components[1].InstanceGUID, loaded.Components[1].InstanceGUID)
		assert.Equal(t, "sum", loaded.Components[1].NickName)
		assert.Equal(t, doc.Connections, loaded.Connections)

		in, ok := loaded.Components[1].Input("B")
		require.True(t, ok)
		require.NotNil(t, in.InternalizedData)
		tree, err := datatree.Decode(in.InternalizedData, values.Default())
		require.NoError(t, err)
		assert.Equal(t, 2, tree.LeafCount())
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		first, err := store.Load(ctx, id)
		require.NoError(t, err)
		first.Components[0].Name = "mutated"

		second, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Number Slider", second.Components[0].Name)
	})

	t.Run("Save replaces", func(t *testing.T) {
		doc := SampleDocument(t)
		doc.Components = doc.Components[:1]
		doc.Connections = nil
		require.NoError(t, store.Save(ctx, id, doc))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Len(t, loaded.Components, 1)
		assert.Empty(t, loaded.Connections)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+id)
		assert.ErrorIs(t, err, ports.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := id + "-b"
		require.NoError(t, store.Save(ctx, other, SampleDocument(t)))
		defer func() { _ = store.Delete(ctx, other) }()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id)
		assert.Contains(t, ids, other)
		assert.IsIncreasing(t, ids)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id))
		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ports.ErrDocumentNotFound)
		assert.NoError(t, store.Delete(ctx, id), "deleting twice is not an error")
	})
}
