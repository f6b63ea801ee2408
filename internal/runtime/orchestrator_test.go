package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canvasdoc/internal/runtime"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/handler/builtin"
	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/host/memhost"
)

func setName(name string) func(*handler.SerializeContext, host.Object) (*document.Record, error) {
	return func(*handler.SerializeContext, host.Object) (*document.Record, error) {
		return &document.Record{Name: name}, nil
	}
}

func newOrchestrator(t *testing.T, hs ...handler.Handler) *runtime.Orchestrator {
	t.Helper()
	reg := handler.NewRegistry()
	reg.MustRegister(hs...)
	return runtime.New(reg)
}

func TestPriorityOrder(t *testing.T) {
	var calls []string
	record := func(name string) func(*handler.SerializeContext, host.Object) (*document.Record, error) {
		return func(*handler.SerializeContext, host.Object) (*document.Record, error) {
			calls = append(calls, name)
			return nil, nil
		}
	}

	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "ext", HandlerPriority: 100, SerializeFn: record("ext")},
		&handler.Funcs{HandlerName: "first", HandlerPriority: 0, SerializeFn: record("first")},
		&handler.Funcs{HandlerName: "second", HandlerPriority: 0, SerializeFn: record("second")},
	)

	_, err := o.Serialize(memhost.NewAddition())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "ext"}, calls)
}

func TestEqualValuesMergeSilently(t *testing.T) {
	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "a", SerializeFn: setName("Foo")},
		&handler.Funcs{HandlerName: "b", SerializeFn: setName("Foo")},
	)

	rec, err := o.Serialize(memhost.NewAddition())
	require.NoError(t, err)
	assert.Equal(t, "Foo", rec.Name)
}

func TestConflictNamesFieldAndValues(t *testing.T) {
	var seen []*runtime.HandlerConflictError
	reg := handler.NewRegistry()
	reg.MustRegister(
		&handler.Funcs{HandlerName: "structural", HandlerPriority: handler.PriorityStructural, SerializeFn: setName("Foo")},
		&handler.Funcs{HandlerName: "extension", HandlerPriority: handler.PriorityExtension, SerializeFn: setName("Bar")},
	)
	o := runtime.New(reg, runtime.WithHooks(runtime.Hooks{
		OnConflict: func(e *runtime.HandlerConflictError) { seen = append(seen, e) },
	}))

	rec, err := o.Serialize(memhost.NewAddition())
	require.Error(t, err)
	assert.Nil(t, rec)

	var conflict *runtime.HandlerConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Name", conflict.Field)
	assert.Equal(t, "Foo", conflict.Existing)
	assert.Equal(t, "Bar", conflict.Rejected)
	assert.Equal(t, "structural", conflict.Owner)
	assert.Equal(t, "extension", conflict.Handler)
	assert.Contains(t, err.Error(), `"Foo"`)
	assert.Contains(t, err.Error(), `"Bar"`)
	assert.Len(t, seen, 1)
}

func TestParameterAndExtensionConflicts(t *testing.T) {
	access := func(a document.Access) func(*handler.SerializeContext, host.Object) (*document.Record, error) {
		return func(*handler.SerializeContext, host.Object) (*document.Record, error) {
			return &document.Record{Inputs: []document.ParameterSettings{{ParameterName: "A", Access: a}}}, nil
		}
	}
	ext := func(v any) func(*handler.SerializeContext, host.Object) (*document.Record, error) {
		return func(*handler.SerializeContext, host.Object) (*document.Record, error) {
			rec := &document.Record{}
			rec.SetExtension("gh.custom", map[string]any{"value": v})
			return rec, nil
		}
	}

	tests := []struct {
		name  string
		a, b  func(*handler.SerializeContext, host.Object) (*document.Record, error)
		field string
	}{
		{"parameter access", access(document.AccessItem), access(document.AccessList), "Inputs[A].Access"},
		{"extension entry", ext(1.5), ext(2.5), "State.Extensions[gh.custom]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(t,
				&handler.Funcs{HandlerName: "a", SerializeFn: tt.a},
				&handler.Funcs{HandlerName: "b", SerializeFn: tt.b},
			)
			_, err := o.Serialize(memhost.NewAddition())
			var conflict *runtime.HandlerConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.field, conflict.Field)
		})
	}

	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "a", SerializeFn: ext(1.5)},
		&handler.Funcs{HandlerName: "b", SerializeFn: ext(1.5)},
	)
	rec, err := o.Serialize(memhost.NewAddition())
	require.NoError(t, err)
	v, ok := rec.Extension("gh.custom")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"value": 1.5}, v)
}

func TestDiagnosticsAppendWithoutConflict(t *testing.T) {
	warn := func(ws ...string) func(*handler.SerializeContext, host.Object) (*document.Record, error) {
		return func(*handler.SerializeContext, host.Object) (*document.Record, error) {
			return &document.Record{Warnings: ws}, nil
		}
	}
	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "a", SerializeFn: warn("disk low", "shared")},
		&handler.Funcs{HandlerName: "b", HandlerPriority: 100, SerializeFn: warn("shared", "slow solve")},
	)

	rec, err := o.Serialize(memhost.NewAddition())
	require.NoError(t, err)
	assert.Equal(t, []string{"disk low", "shared", "slow solve"}, rec.Warnings)
}

func TestHandlerFailuresBecomeWarnings(t *testing.T) {
	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "broken", SerializeFn: func(*handler.SerializeContext, host.Object) (*document.Record, error) {
			return nil, errors.New("property missing")
		}},
		&handler.Funcs{HandlerName: "explosive", SerializeFn: func(*handler.SerializeContext, host.Object) (*document.Record, error) {
			panic("boom")
		}},
		&handler.Funcs{HandlerName: "healthy", SerializeFn: setName("Addition")},
	)

	rec, err := o.Serialize(memhost.NewAddition())
	require.NoError(t, err)
	assert.Equal(t, "Addition", rec.Name)
	require.Len(t, rec.Warnings, 2)
	assert.Contains(t, rec.Warnings[0], "broken failed during serialize: property missing")
	assert.Contains(t, rec.Warnings[1], "explosive panicked during serialize: boom")
}

func TestOmissionAppliesAfterMerge(t *testing.T) {
	outputs := func(*handler.SerializeContext, host.Object) (*document.Record, error) {
		return &document.Record{Outputs: []document.ParameterSettings{
			{ParameterName: "out"},
			{ParameterName: "a"},
		}}, nil
	}
	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "omit", SerializeFn: func(ctx *handler.SerializeContext, _ host.Object) (*document.Record, error) {
			ctx.OmitParam(host.Output, "out")
			return nil, nil
		}},
		&handler.Funcs{HandlerName: "params", HandlerPriority: 10, SerializeFn: outputs},
	)

	rec, err := o.Serialize(memhost.NewAddition())
	require.NoError(t, err)
	require.Len(t, rec.Outputs, 1)
	assert.Equal(t, "a", rec.Outputs[0].ParameterName)
}

func TestDeserializeContinuesPastFailures(t *testing.T) {
	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "warns", DeserializeFn: func(ctx *handler.DeserializeContext, _ *document.Record, _ host.Object) error {
			ctx.Warnf("colour ignored")
			return nil
		}},
		&handler.Funcs{HandlerName: "fails", DeserializeFn: func(*handler.DeserializeContext, *document.Record, host.Object) error {
			return host.ErrPropertyNotFound
		}},
		&handler.Funcs{HandlerName: "nick", HandlerPriority: 100, DeserializeFn: func(_ *handler.DeserializeContext, rec *document.Record, obj host.Object) error {
			obj.SetNickName(rec.NickName)
			return nil
		}},
	)

	obj := memhost.NewAddition()
	res, err := o.Deserialize(&document.Record{Name: "Addition", NickName: "sum"}, obj)
	require.NoError(t, err)
	assert.Equal(t, "sum", obj.NickName())
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "fails", res.Failures[0].Handler)
	assert.ErrorIs(t, res.Err(), host.ErrPropertyNotFound)
	assert.Contains(t, res.Warnings, "colour ignored")
	assert.Len(t, res.Warnings, 2)
}

func TestHooksSkipInapplicableHandlers(t *testing.T) {
	var started, done []string
	var failed int
	reg := handler.NewRegistry()
	reg.MustRegister(
		&handler.Funcs{HandlerName: "ok", SerializeFn: setName("Addition")},
		&handler.Funcs{HandlerName: "never", CanSerializeFn: func(host.Object) bool { return false }},
		&handler.Funcs{HandlerName: "bad", SerializeFn: func(*handler.SerializeContext, host.Object) (*document.Record, error) {
			return nil, errors.New("nope")
		}},
	)
	hooks := runtime.Hooks{
		OnHandlerStart: func(e *runtime.HandlerEvent) { started = append(started, e.Handler) },
		OnHandlerDone: func(e *runtime.HandlerEvent) {
			done = append(done, e.Handler)
			if e.Err != nil {
				failed++
			}
		},
	}
	o := runtime.New(reg, runtime.WithHooks(runtime.Chain(hooks, runtime.Hooks{})))

	_, err := o.Serialize(memhost.NewAddition())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok", "bad"}, started)
	assert.Equal(t, []string{"ok", "bad"}, done)
	assert.Equal(t, 1, failed)
}

func TestSerializeAllKeepsGoing(t *testing.T) {
	o := newOrchestrator(t,
		&handler.Funcs{HandlerName: "name", SerializeFn: func(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
			return &document.Record{Name: obj.Name()}, nil
		}},
		&handler.Funcs{HandlerName: "rename", HandlerPriority: 100, SerializeFn: func(_ *handler.SerializeContext, obj host.Object) (*document.Record, error) {
			if obj.Name() == "Panel" {
				return &document.Record{Name: "Renamed"}, nil
			}
			return nil, nil
		}},
	)

	recs, err := o.SerializeAll([]host.Object{memhost.NewAddition(), memhost.NewPanel("hi"), memhost.NewToggle(true)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object 1 (Panel")
	require.Len(t, recs, 2)
	assert.Equal(t, "Addition", recs[0].Name)
	assert.Equal(t, "Boolean Toggle", recs[1].Name)

	results, err := o.DeserializeAll([]runtime.Item{
		{Record: recs[0], Object: memhost.NewAddition()},
		{Record: nil, Object: memhost.NewAddition()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
}

func TestInitializerRunsOnFirstUse(t *testing.T) {
	reg := handler.NewRegistry(handler.WithInitializer(func(r *handler.Registry) error {
		return errors.New("plugin directory unreadable")
	}))
	_, err := runtime.New(reg).Serialize(memhost.NewAddition())
	assert.ErrorContains(t, err, "plugin directory unreadable")
}

func TestScriptRoundTripThroughPlacement(t *testing.T) {
	reg := handler.NewRegistry(handler.WithInitializer(builtin.Register))
	o := runtime.New(reg)

	src := memhost.NewScript("python", "a = x + y")
	require.NoError(t, src.Properties().Set("UsingStandardOutputParam", false))

	rec, err := o.Serialize(src)
	require.NoError(t, err)
	assert.Equal(t, "Script", rec.Name)
	_, hasOut := rec.Output(builtin.StandardOutputParam)
	assert.False(t, hasOut)
	_, hasA := rec.Output("a")
	assert.True(t, hasA)

	dst := memhost.NewScript("python", "")
	res, err := o.Deserialize(rec, dst)
	require.NoError(t, err)
	require.NoError(t, res.Err())
	assert.Equal(t, src.InstanceGUID(), dst.InstanceGUID())

	canvas := memhost.NewCanvas()
	require.NoError(t, canvas.Insert(dst))
	stdout, _ := dst.Properties().Get("UsingStandardOutputParam")
	require.Equal(t, true, stdout)

	res, err = o.PostPlace(rec, dst)
	require.NoError(t, err)
	require.NoError(t, res.Err())
	stdout, _ = dst.Properties().Get("UsingStandardOutputParam")
	assert.Equal(t, false, stdout)
	code, _ := dst.Properties().Get("Code")
	assert.Equal(t, "a = x + y", code)
}
