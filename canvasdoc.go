package canvasdoc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/internal/logging"
	"github.com/aretw0/canvasdoc/internal/runtime"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/handler/builtin"
	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/host/memhost"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// Version of the canvasdoc module.
const Version = "0.1.0"

// Re-exported runtime types, so callers need not import internal packages.
type (
	Hooks                 = runtime.Hooks
	HandlerEvent          = runtime.HandlerEvent
	HandlerConflictError  = runtime.HandlerConflictError
	HandlerExecutionError = runtime.HandlerExecutionError
	Result                = runtime.Result
)

// ChainHooks combines hooks; see runtime.Chain.
func ChainHooks(hs ...Hooks) Hooks { return runtime.Chain(hs...) }

// Converter serializes canvases to documents and rebuilds them.
type Converter struct {
	registry  *handler.Registry
	codec     *values.Registry
	factory   host.Factory
	logger    *slog.Logger
	hooks     Hooks
	generator string
	genVer    string
	schema    string
	disabled  []string

	orch *runtime.Orchestrator
}

// Option configures a Converter.
type Option func(*Converter)

// WithRegistry replaces the built-in handler registry.
func WithRegistry(r *handler.Registry) Option {
	return func(c *Converter) {
		c.registry = r
	}
}

// WithCodec sets the value codec used for internalized data.
func WithCodec(codec *values.Registry) Option {
	return func(c *Converter) {
		c.codec = codec
	}
}

// WithFactory sets how DeserializeDocument creates objects.
// Defaults to memhost.NewFactory().
func WithFactory(f host.Factory) Option {
	return func(c *Converter) {
		c.factory = f
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithHooks registers handler lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(c *Converter) {
		c.hooks = h
	}
}

// WithGenerator stamps produced documents with the exporting tool.
func WithGenerator(name, version string) Option {
	return func(c *Converter) {
		c.generator = name
		c.genVer = version
	}
}

// WithSchemaVersion sets the schema version stamped on produced documents.
func WithSchemaVersion(v string) Option {
	return func(c *Converter) {
		c.schema = v
	}
}

// WithoutHandlers removes the named handlers from the default registry.
// It has no effect together with WithRegistry.
func WithoutHandlers(names ...string) Option {
	return func(c *Converter) {
		c.disabled = append(c.disabled, names...)
	}
}

// New creates a Converter. Without WithRegistry it uses the built-in
// handlers, installed on first use.
func New(opts ...Option) *Converter {
	c := &Converter{
		codec:     values.Default(),
		logger:    logging.NewNop(),
		generator: "canvasdoc",
		genVer:    Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry(c.disabled...)
	}
	if c.factory == nil {
		c.factory = memhost.NewFactory()
	}
	c.orch = runtime.New(c.registry,
		runtime.WithCodec(c.codec),
		runtime.WithLogger(c.logger),
		runtime.WithHooks(c.hooks),
	)
	return c
}

// DefaultRegistry returns a registry that installs the built-in handlers,
// minus the disabled ones, on first use.
func DefaultRegistry(disabled ...string) *handler.Registry {
	return handler.NewRegistry(handler.WithInitializer(func(r *handler.Registry) error {
		if err := builtin.Register(r); err != nil {
			return err
		}
		for _, name := range disabled {
			if !r.UnregisterName(name) {
				return fmt.Errorf("cannot disable unknown handler %q", name)
			}
		}
		return nil
	}))
}

// Registry returns the handler registry, e.g. to register custom handlers.
func (c *Converter) Registry() *handler.Registry {
	return c.registry
}

// Serialize builds the record for one object.
func (c *Converter) Serialize(obj host.Object) (*document.Record, error) {
	return c.orch.Serialize(obj)
}

// Deserialize applies one record to an object that is not yet placed.
func (c *Converter) Deserialize(rec *document.Record, obj host.Object) (*Result, error) {
	return c.orch.Deserialize(rec, obj)
}

// PostPlace re-applies state the host resets on insertion.
func (c *Converter) PostPlace(rec *document.Record, obj host.Object) (*Result, error) {
	return c.orch.PostPlace(rec, obj)
}

// SerializeCanvas builds a document from every object and wire on canvas.
// Objects that fail are left out and reported in the joined error, so a
// non-nil error can come with a usable document.
func (c *Converter) SerializeCanvas(canvas host.Canvas) (*document.Document, error) {
	recs, err := c.orch.SerializeAll(canvas.Objects())

	doc := document.New(document.WithGenerator(c.generator, c.genVer), document.WithSchemaVersion(c.schema))
	for _, rec := range recs {
		doc.Components = append(doc.Components, *rec)
	}
	for _, w := range canvas.Wires() {
		doc.Connections = append(doc.Connections, ConnectionFromWire(w))
	}
	doc.Refresh()

	c.logger.Info("canvas serialized", "components", len(doc.Components), "connections", len(doc.Connections), "failed", err != nil)
	return doc, err
}

// ConnectionFromWire converts a host wire to a document connection.
func ConnectionFromWire(w host.Wire) document.Connection {
	conn := document.Connection{
		From: document.Endpoint{InstanceGUID: w.From, ParamName: w.FromParam},
		To:   document.Endpoint{InstanceGUID: w.To, ParamName: w.ToParam},
	}
	if w.ToIndex >= 0 {
		idx := w.ToIndex
		conn.To.ParamIndex = &idx
	}
	return conn
}

// WireFromConnection converts a document connection to a host wire.
func WireFromConnection(conn document.Connection) host.Wire {
	w := host.Wire{
		From:      conn.From.InstanceGUID,
		FromParam: conn.From.ParamName,
		To:        conn.To.InstanceGUID,
		ToParam:   conn.To.ParamName,
		ToIndex:   -1,
	}
	if conn.To.ParamIndex != nil {
		w.ToIndex = *conn.To.ParamIndex
	}
	return w
}

// Report describes a DeserializeDocument run.
type Report struct {
	// Objects maps instance ids to the objects placed on the canvas.
	Objects map[uuid.UUID]host.Object
	// Warnings holds non-fatal messages per instance id.
	Warnings map[uuid.UUID][]string
	// Wires counts connections restored.
	Wires int
}

// DeserializeDocument rebuilds doc onto canvas: each component is created by
// the factory, deserialized, inserted, then post-placed; wires follow once
// every component is placed. Failures are collected per component and per
// connection without stopping the run.
func (c *Converter) DeserializeDocument(doc *document.Document, canvas host.Canvas) (*Report, error) {
	if doc == nil {
		return nil, errors.New("deserialize: nil document")
	}
	report := &Report{
		Objects:  make(map[uuid.UUID]host.Object, len(doc.Components)),
		Warnings: make(map[uuid.UUID][]string),
	}
	var errs []error

	for i := range doc.Components {
		rec := &doc.Components[i]
		obj, warnings, err := c.place(rec, canvas)
		if len(warnings) > 0 {
			report.Warnings[rec.InstanceGUID] = warnings
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("component %d (%s %s): %w", i, rec.Name, rec.InstanceGUID, err))
			continue
		}
		report.Objects[rec.InstanceGUID] = obj
	}

	for i, conn := range doc.Connections {
		if err := canvas.Connect(WireFromConnection(conn)); err != nil {
			errs = append(errs, fmt.Errorf("connection %d: %w", i, err))
			continue
		}
		report.Wires++
	}

	c.logger.Info("document deserialized", "components", len(report.Objects), "wires", report.Wires, "errors", len(errs))
	return report, errors.Join(errs...)
}

func (c *Converter) place(rec *document.Record, canvas host.Canvas) (host.Object, []string, error) {
	obj, err := c.factory.Create(rec.ComponentGUID, rec.Name)
	if err != nil {
		return nil, nil, err
	}

	res, err := c.orch.Deserialize(rec, obj)
	if err != nil {
		return nil, nil, err
	}
	warnings := res.Warnings

	if err := canvas.Insert(obj); err != nil {
		return nil, warnings, err
	}

	post, err := c.orch.PostPlace(rec, obj)
	if err != nil {
		return obj, warnings, err
	}
	return obj, append(warnings, post.Warnings...), nil
}
