package runtime

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/canvasdoc/internal/logging"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// Orchestrator drives handlers over one live object at a time.
type Orchestrator struct {
	registry *handler.Registry
	codec    *values.Registry
	logger   *slog.Logger
	hooks    Hooks
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCodec sets the value codec handed to handlers.
func WithCodec(codec *values.Registry) Option {
	return func(o *Orchestrator) {
		o.codec = codec
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// New creates an orchestrator over registry. The registry is initialized on
// first use.
func New(registry *handler.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		codec:    values.Default(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Result collects the non-fatal problems of one deserialize or post-place pass.
type Result struct {
	Warnings []string
	Failures []*HandlerExecutionError
}

// Err joins the handler failures, or returns nil.
func (r *Result) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

func (r *Result) warn(msg string) {
	r.Warnings = appendUnique(r.Warnings, []string{msg})
}

func (o *Orchestrator) handlers() ([]handler.Handler, error) {
	if o.registry == nil {
		return nil, fmt.Errorf("orchestrator: no handler registry")
	}
	if err := o.registry.EnsureInitialized(); err != nil {
		return nil, fmt.Errorf("initialize handlers: %w", err)
	}
	return o.registry.All(), nil
}

// Serialize builds the record for obj. Every applicable handler contributes a
// patch, merged in priority order; a disagreement aborts with a
// *HandlerConflictError. Failing handlers are skipped and noted as warnings.
func (o *Orchestrator) Serialize(obj host.Object) (*document.Record, error) {
	if obj == nil {
		return nil, fmt.Errorf("serialize: nil object")
	}
	hs, err := o.handlers()
	if err != nil {
		return nil, err
	}

	log := o.logger.With("object", obj.InstanceGUID(), "name", obj.Name())
	ctx := handler.NewSerializeContext(o.codec, log)
	m := newMerger()
	var failures []*HandlerExecutionError

	for _, h := range hs {
		var patch *document.Record
		err := o.invoke(h, PhaseSerialize, obj, func() bool { return h.CanSerialize(obj) }, func() error {
			var err error
			patch, err = h.Serialize(ctx, obj)
			return err
		})
		if err != nil {
			failures = append(failures, err)
			log.Warn("handler failed", "handler", h.Name(), "error", err.Err)
			continue
		}
		if patch == nil {
			continue
		}
		if err := m.merge(h.Name(), patch); err != nil {
			var conflict *HandlerConflictError
			if errors.As(err, &conflict) && o.hooks.OnConflict != nil {
				o.hooks.OnConflict(conflict)
			}
			log.Error("handler conflict", "handler", h.Name(), "error", err)
			return nil, err
		}
	}

	rec := m.rec
	rec.Inputs = dropOmitted(rec.Inputs, func(name string) bool { return ctx.Omitted(host.Input, name) })
	rec.Outputs = dropOmitted(rec.Outputs, func(name string) bool { return ctx.Omitted(host.Output, name) })
	for _, f := range failures {
		rec.AddWarning(f.Error())
	}
	return rec, nil
}

// Deserialize applies rec onto obj in priority order. Handler failures do not
// stop the pass; they are returned in the Result.
func (o *Orchestrator) Deserialize(rec *document.Record, obj host.Object) (*Result, error) {
	return o.apply(PhaseDeserialize, rec, obj, func(h handler.Handler, ctx *handler.DeserializeContext) error {
		return h.Deserialize(ctx, rec, obj)
	})
}

// PostPlace runs the post-placement step of every applicable handler. Call it
// only after obj has been inserted into its canvas.
func (o *Orchestrator) PostPlace(rec *document.Record, obj host.Object) (*Result, error) {
	return o.apply(PhasePostPlace, rec, obj, func(h handler.Handler, ctx *handler.DeserializeContext) error {
		pp, ok := h.(handler.PostPlacer)
		if !ok {
			return nil
		}
		return pp.PostPlace(ctx, rec, obj)
	})
}

func (o *Orchestrator) apply(phase Phase, rec *document.Record, obj host.Object, run func(handler.Handler, *handler.DeserializeContext) error) (*Result, error) {
	if rec == nil || obj == nil {
		return nil, fmt.Errorf("%s: nil record or object", phase)
	}
	hs, err := o.handlers()
	if err != nil {
		return nil, err
	}

	log := o.logger.With("object", rec.InstanceGUID, "name", rec.Name)
	ctx := handler.NewDeserializeContext(o.codec, log)
	res := &Result{}

	for _, h := range hs {
		if phase == PhasePostPlace {
			if _, ok := h.(handler.PostPlacer); !ok {
				continue
			}
		}
		applies := func() bool { return h.CanDeserialize(rec) }
		if err := o.invoke(h, phase, obj, applies, func() error { return run(h, ctx) }); err != nil {
			res.Failures = append(res.Failures, err)
			res.warn(err.Error())
			log.Warn("handler failed", "handler", h.Name(), "phase", phase, "error", err.Err)
		}
	}
	for _, w := range ctx.Warnings() {
		res.warn(w)
	}
	return res, nil
}

// invoke runs fn when applies reports true, turning errors and panics from
// either into *HandlerExecutionError. Only invocations that run are reported
// to the hooks.
func (o *Orchestrator) invoke(h handler.Handler, phase Phase, obj host.Object, applies func() bool, fn func() error) (failure *HandlerExecutionError) {
	var ev *HandlerEvent
	var start time.Time

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			failure = &HandlerExecutionError{Handler: h.Name(), Phase: phase, Err: err, Panic: true}
		}
		if ev == nil {
			return
		}
		ev.Duration = time.Since(start)
		if failure != nil {
			ev.Err = failure
		}
		if o.hooks.OnHandlerDone != nil {
			o.hooks.OnHandlerDone(ev)
		}
	}()

	if !applies() {
		return nil
	}
	ev = &HandlerEvent{Handler: h.Name(), Phase: phase, Object: obj.InstanceGUID()}
	if o.hooks.OnHandlerStart != nil {
		o.hooks.OnHandlerStart(ev)
	}
	start = time.Now()

	if err := fn(); err != nil {
		return &HandlerExecutionError{Handler: h.Name(), Phase: phase, Err: err}
	}
	return nil
}
