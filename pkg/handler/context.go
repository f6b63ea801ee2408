package handler

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/canvasdoc/internal/logging"
	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/values"
)

// SerializeContext is shared by every handler during one record's serialize pass.
type SerializeContext struct {
	Codec  *values.Registry
	Logger *slog.Logger

	omitted map[host.Side]map[string]bool
}

// NewSerializeContext returns a context; nil arguments fall back to the
// default codec and a no-op logger.
func NewSerializeContext(codec *values.Registry, logger *slog.Logger) *SerializeContext {
	if codec == nil {
		codec = values.Default()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SerializeContext{
		Codec:   codec,
		Logger:  logger,
		omitted: make(map[host.Side]map[string]bool),
	}
}

// OmitParam asks the runtime to drop a parameter from the merged record.
// Omission is applied after every patch has been merged.
func (c *SerializeContext) OmitParam(side host.Side, name string) {
	if c.omitted[side] == nil {
		c.omitted[side] = make(map[string]bool)
	}
	c.omitted[side][name] = true
}

// Omitted reports whether a parameter was marked with OmitParam.
func (c *SerializeContext) Omitted(side host.Side, name string) bool {
	return c.omitted[side][name]
}

// DeserializeContext is shared by every handler while one record is applied.
type DeserializeContext struct {
	Codec  *values.Registry
	Logger *slog.Logger

	warnings []string
}

// NewDeserializeContext mirrors NewSerializeContext.
func NewDeserializeContext(codec *values.Registry, logger *slog.Logger) *DeserializeContext {
	if codec == nil {
		codec = values.Default()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DeserializeContext{Codec: codec, Logger: logger}
}

// Warnf records a non-fatal problem, such as an optional field that could not
// be applied.
func (c *DeserializeContext) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.Logger.Debug("deserialize warning", "msg", msg)
	c.warnings = append(c.warnings, msg)
}

// Warnings returns the messages recorded with Warnf.
func (c *DeserializeContext) Warnings() []string {
	return append([]string(nil), c.warnings...)
}
