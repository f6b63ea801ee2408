package memhost_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/host/memhost"
)

func TestInsertResetsScriptStandardOutput(t *testing.T) {
	script := memhost.NewScript("python", "a = x + y")
	require.NoError(t, script.Properties().Set("UsingStandardOutputParam", false))

	canvas := memhost.NewCanvas()
	require.NoError(t, canvas.Insert(script))
	assert.True(t, script.Inserted())

	v, err := script.Properties().Get("UsingStandardOutputParam")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestInsertRejectsDuplicates(t *testing.T) {
	id := uuid.New()
	canvas := memhost.NewCanvas()
	require.NoError(t, canvas.Insert(memhost.NewComponent("A", uuid.New(), memhost.WithInstanceGUID(id))))
	assert.Error(t, canvas.Insert(memhost.NewComponent("B", uuid.New(), memhost.WithInstanceGUID(id))))
	assert.Len(t, canvas.Objects(), 1)
}

func TestConnect(t *testing.T) {
	slider := memhost.NewSlider(5, 0, 10)
	add := memhost.NewAddition()
	canvas := memhost.NewCanvas()
	require.NoError(t, canvas.Add(slider, add))

	require.NoError(t, canvas.Connect(host.Wire{From: slider.InstanceGUID(), To: add.InstanceGUID(), ToParam: "A", ToIndex: -1}))
	require.NoError(t, canvas.Connect(host.Wire{From: slider.InstanceGUID(), To: add.InstanceGUID(), ToParam: "A", ToIndex: -1}))

	wires := canvas.Wires()
	require.Len(t, wires, 2)
	assert.Equal(t, "Number", wires[0].FromParam)
	assert.Equal(t, 0, wires[0].ToIndex)
	assert.Equal(t, 1, wires[1].ToIndex)

	err := canvas.Connect(host.Wire{From: slider.InstanceGUID(), To: add.InstanceGUID(), ToParam: "Z"})
	assert.ErrorIs(t, err, host.ErrParamNotFound)

	err = canvas.Connect(host.Wire{From: slider.InstanceGUID(), To: add.InstanceGUID()})
	assert.Error(t, err, "addition has two inputs so the name is required")

	assert.Error(t, canvas.Connect(host.Wire{From: uuid.New(), To: add.InstanceGUID(), ToParam: "A"}))
}

func TestFactory(t *testing.T) {
	f := memhost.NewFactory()

	obj, err := f.Create(memhost.SliderGUID, "Number Slider")
	require.NoError(t, err)
	assert.Equal(t, host.KindParameter, obj.Kind())
	assert.Equal(t, memhost.TypeSlider, obj.Type())

	other, err := f.Create(memhost.SliderGUID, "Number Slider")
	require.NoError(t, err)
	assert.NotEqual(t, obj.InstanceGUID(), other.InstanceGUID())

	_, err = f.Create(uuid.New(), "Mystery")
	assert.ErrorIs(t, err, host.ErrUnknownComponent)
}

func TestParameterSetters(t *testing.T) {
	p := memhost.NewParameter("A")
	assert.Equal(t, "item", p.Access())
	assert.Equal(t, "none", p.DataMapping())

	require.NoError(t, p.SetAccess("tree"))
	require.NoError(t, p.SetDataMapping("graft"))
	assert.Error(t, p.SetAccess("matrix"))
	assert.Error(t, p.SetDataMapping("shuffle"))
	assert.Equal(t, "tree", p.Access())
	assert.Equal(t, "graft", p.DataMapping())

	p.SetFlag(host.Reverse, true)
	assert.True(t, p.Flag(host.Reverse))
	assert.False(t, p.Flag(host.Simplify))
}

func TestFindParam(t *testing.T) {
	add := memhost.NewAddition()
	p, err := host.FindParam(add, host.Input, "B")
	require.NoError(t, err)
	assert.Equal(t, "B", p.Name())

	_, err = host.FindParam(add, host.Output, "B")
	assert.ErrorIs(t, err, host.ErrParamNotFound)
}
