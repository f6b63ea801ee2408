package builtin_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canvasdoc/pkg/datatree"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/handler/builtin"
	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/host/memhost"
	"github.com/aretw0/canvasdoc/pkg/values"
)

func sctx() *handler.SerializeContext   { return handler.NewSerializeContext(nil, nil) }
func dctx() *handler.DeserializeContext { return handler.NewDeserializeContext(nil, nil) }

func TestRegisterInstallsAll(t *testing.T) {
	reg := handler.NewRegistry(handler.WithInitializer(builtin.Register))
	require.NoError(t, reg.EnsureInitialized())

	all := reg.All()
	require.Len(t, all, len(builtin.Structural())+len(builtin.Extensions()))
	for i, h := range all {
		if i < len(builtin.Structural()) {
			assert.Equal(t, handler.PriorityStructural, h.Priority(), h.Name())
		} else {
			assert.Equal(t, handler.PriorityExtension, h.Priority(), h.Name())
		}
	}
	assert.Equal(t, "identity", all[0].Name())
}

func TestIdentityRoundTrip(t *testing.T) {
	add := memhost.NewAddition()
	add.SetNickName("sum")

	rec, err := builtin.Identity{}.Serialize(sctx(), add)
	require.NoError(t, err)
	assert.Equal(t, "Addition", rec.Name)
	assert.Equal(t, "sum", rec.NickName)
	assert.Equal(t, memhost.AdditionGUID, rec.ComponentGUID)
	assert.Equal(t, add.InstanceGUID(), rec.InstanceGUID)

	target := memhost.NewAddition()
	require.NoError(t, builtin.Identity{}.Deserialize(dctx(), rec, target))
	assert.Equal(t, "sum", target.NickName())
	assert.Equal(t, add.InstanceGUID(), target.InstanceGUID())
}

func TestIdentityOmitsDefaultNickName(t *testing.T) {
	rec, err := builtin.Identity{}.Serialize(sctx(), memhost.NewAddition())
	require.NoError(t, err)
	assert.Empty(t, rec.NickName)
}

func TestAttributesOnlyWritesSetFlags(t *testing.T) {
	add := memhost.NewAddition()
	rec, err := builtin.Attributes{}.Serialize(sctx(), add)
	require.NoError(t, err)
	assert.Nil(t, rec.State)

	add.SetLocked(true)
	rec, err = builtin.Attributes{}.Serialize(sctx(), add)
	require.NoError(t, err)
	require.NotNil(t, rec.State)
	assert.True(t, *rec.State.Locked)
	assert.Nil(t, rec.State.Hidden)

	target := memhost.NewAddition()
	target.SetHidden(true)
	require.True(t, builtin.Attributes{}.CanDeserialize(rec))
	require.NoError(t, builtin.Attributes{}.Deserialize(dctx(), rec, target))
	assert.True(t, target.Locked())
	assert.True(t, target.Hidden(), "unset flags are left alone")
}

func TestModifiersRoundTrip(t *testing.T) {
	add := memhost.NewAddition()
	a, _ := add.Input("A")
	require.NoError(t, a.SetAccess("list"))
	require.NoError(t, a.SetDataMapping("flatten"))
	a.SetFlag(host.Reverse, true)
	a.SetExpression("x * 2")

	rec, err := builtin.Modifiers{}.Serialize(sctx(), add)
	require.NoError(t, err)
	require.Len(t, rec.Inputs, 2)
	assert.Equal(t, document.AccessList, rec.Inputs[0].Access)
	assert.Equal(t, document.MappingFlatten, rec.Inputs[0].DataMapping)
	assert.True(t, *rec.Inputs[0].Reverse)
	assert.Nil(t, rec.Inputs[0].Invert)
	assert.Equal(t, "x * 2", rec.Inputs[0].Expression)
	assert.Empty(t, rec.Inputs[1].DataMapping)

	target := memhost.NewAddition()
	require.NoError(t, builtin.Modifiers{}.Deserialize(dctx(), rec, target))
	ta, _ := target.Input("A")
	assert.Equal(t, "list", ta.Access())
	assert.Equal(t, "flatten", ta.DataMapping())
	assert.True(t, ta.Flag(host.Reverse))
	assert.Equal(t, "x * 2", ta.Expression())
}

func TestParametersWarnOnMissing(t *testing.T) {
	rec := &document.Record{Inputs: []document.ParameterSettings{
		{ParameterName: "A", NickName: "first"},
		{ParameterName: "Z", NickName: "ghost"},
	}}
	ctx := dctx()
	target := memhost.NewAddition()
	require.NoError(t, builtin.Parameters{}.Deserialize(ctx, rec, target))

	a, _ := target.Input("A")
	assert.Equal(t, "first", a.NickName())
	require.Len(t, ctx.Warnings(), 1)
	assert.Contains(t, ctx.Warnings()[0], `"Z"`)
}

func TestInternalizedRoundTrip(t *testing.T) {
	add := memhost.NewAddition()
	b, _ := add.Input("B")
	tree := datatree.New()
	tree.Append(datatree.Root(), values.Value{Kind: values.KindNumber, Data: 4.0})
	b.SetPersistentData(tree)

	rec, err := builtin.Internalized{}.Serialize(sctx(), add)
	require.NoError(t, err)
	require.Len(t, rec.Inputs, 1)
	assert.Equal(t, "B", rec.Inputs[0].ParameterName)
	assert.Empty(t, rec.Outputs)
	assert.True(t, builtin.Internalized{}.CanDeserialize(rec))

	target := memhost.NewAddition()
	require.NoError(t, builtin.Internalized{}.Deserialize(dctx(), rec, target))
	tb, _ := target.Input("B")
	got, ok := tb.PersistentData().Get(datatree.Root())
	require.True(t, ok)
	assert.Equal(t, 4.0, got[0].Data)
}

func TestMessagesOnlyForComponents(t *testing.T) {
	add := memhost.NewAddition()
	add.SetMessages(nil, []string{"input A failed to collect data"}, nil)
	assert.True(t, builtin.Messages{}.CanSerialize(add))
	assert.False(t, builtin.Messages{}.CanSerialize(memhost.NewSlider(1, 0, 2)))

	rec, err := builtin.Messages{}.Serialize(sctx(), add)
	require.NoError(t, err)
	assert.Equal(t, []string{"input A failed to collect data"}, rec.Warnings)
	assert.False(t, builtin.Messages{}.CanDeserialize(rec))
}

func TestSliderRoundTrip(t *testing.T) {
	slider := memhost.NewSlider(5, 0, 10)
	require.True(t, builtin.Slider{}.CanSerialize(slider))
	assert.False(t, builtin.Slider{}.CanSerialize(memhost.NewAddition()))

	rec, err := builtin.Slider{}.Serialize(sctx(), slider)
	require.NoError(t, err)
	ext, ok := rec.Extension(builtin.KeySlider)
	require.True(t, ok)
	assert.Equal(t, "5<0~10>", ext.(map[string]any)["value"])

	target := memhost.NewSlider(0, 0, 1)
	require.NoError(t, builtin.Slider{}.Deserialize(dctx(), rec, target))
	v, _ := target.Properties().Get("Value")
	assert.Equal(t, 5.0, v)
	hi, _ := target.Properties().Get("Maximum")
	assert.Equal(t, 10.0, hi)
}

func TestSliderDecodesWeaklyTypedEntries(t *testing.T) {
	rec := &document.Record{}
	rec.SetExtension(builtin.KeySlider, map[string]any{"value": "0.5<0~1>", "decimals": 3.0})

	target := memhost.NewSlider(0, 0, 1)
	require.NoError(t, builtin.Slider{}.Deserialize(dctx(), rec, target))
	d, _ := target.Properties().Get("DecimalPlaces")
	assert.Equal(t, 3, d)
}

func TestSliderRejectsBadTriple(t *testing.T) {
	rec := &document.Record{}
	rec.SetExtension(builtin.KeySlider, map[string]any{"value": "11<0~10>"})
	assert.Error(t, builtin.Slider{}.Deserialize(dctx(), rec, memhost.NewSlider(0, 0, 1)))
}

func TestPanelRoundTrip(t *testing.T) {
	panel := memhost.NewPanel("hello\nworld")
	rec, err := builtin.Panel{}.Serialize(sctx(), panel)
	require.NoError(t, err)
	ext, _ := rec.Extension(builtin.KeyPanel)
	assert.Equal(t, "argb:255,255,250,90", ext.(map[string]any)["colour"])

	target := memhost.NewPanel("")
	require.NoError(t, builtin.Panel{}.Deserialize(dctx(), rec, target))
	text, _ := target.Properties().Get("UserText")
	assert.Equal(t, "hello\nworld", text)
	c, _ := target.Properties().Get("Colour")
	assert.Equal(t, values.Color{A: 255, R: 255, G: 250, B: 90}, c)
}

func TestToggleAndSwatch(t *testing.T) {
	rec, err := builtin.Toggle{}.Serialize(sctx(), memhost.NewToggle(true))
	require.NoError(t, err)
	toggle := memhost.NewToggle(false)
	require.NoError(t, builtin.Toggle{}.Deserialize(dctx(), rec, toggle))
	on, _ := toggle.Properties().Get("Value")
	assert.Equal(t, true, on)

	red := values.Color{A: 255, R: 255}
	rec, err = builtin.Swatch{}.Serialize(sctx(), memhost.NewSwatch(red))
	require.NoError(t, err)
	ext, _ := rec.Extension(builtin.KeySwatch)
	assert.Equal(t, "argb:255,255,0,0", ext.(map[string]any)["colour"])

	swatch := memhost.NewSwatch(values.Color{})
	require.NoError(t, builtin.Swatch{}.Deserialize(dctx(), rec, swatch))
	c, _ := swatch.Properties().Get("SwatchColour")
	assert.Equal(t, red, c)
}

func TestScriptOmitsHiddenStandardOutput(t *testing.T) {
	script := memhost.NewScript("python", "a = x + y")
	require.NoError(t, script.Properties().Set("UsingStandardOutputParam", false))

	ctx := sctx()
	rec, err := builtin.Script{}.Serialize(ctx, script)
	require.NoError(t, err)
	assert.True(t, ctx.Omitted(host.Output, builtin.StandardOutputParam))

	ext, _ := rec.Extension(builtin.KeyScript)
	state := ext.(map[string]any)
	assert.Equal(t, "a = x + y", state["source"])
	assert.Equal(t, false, state["standard_output"])

	visible := sctx()
	_, err = builtin.Script{}.Serialize(visible, memhost.NewScript("python", ""))
	require.NoError(t, err)
	assert.False(t, visible.Omitted(host.Output, builtin.StandardOutputParam))
}

func TestScriptPostPlaceReappliesFlag(t *testing.T) {
	rec := &document.Record{InstanceGUID: uuid.New()}
	rec.SetExtension(builtin.KeyScript, map[string]any{
		"source":          "print(x)",
		"language":        "python",
		"standard_output": false,
	})

	script := memhost.NewScript("python", "")
	require.NoError(t, builtin.Script{}.Deserialize(dctx(), rec, script))
	stdout, _ := script.Properties().Get("UsingStandardOutputParam")
	assert.Equal(t, false, stdout)

	canvas := memhost.NewCanvas()
	require.NoError(t, canvas.Insert(script))
	stdout, _ = script.Properties().Get("UsingStandardOutputParam")
	require.Equal(t, true, stdout, "insertion resets the flag")

	var pp handler.PostPlacer = builtin.Script{}
	require.NoError(t, pp.PostPlace(dctx(), rec, script))
	stdout, _ = script.Properties().Get("UsingStandardOutputParam")
	assert.Equal(t, false, stdout)

	code, _ := script.Properties().Get("Code")
	assert.Equal(t, "print(x)", code)
}
