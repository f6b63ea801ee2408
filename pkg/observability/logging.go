package observability

import (
	"log/slog"

	"github.com/aretw0/canvasdoc/internal/runtime"
)

// LogHooks reports handler activity to logger: completions at debug level,
// failures at warn and conflicts at error.
func LogHooks(logger *slog.Logger) runtime.Hooks {
	return runtime.Hooks{
		OnHandlerDone: func(e *runtime.HandlerEvent) {
			if e.Err != nil {
				logger.Warn("handler failed", "handler", e.Handler, "phase", e.Phase, "object", e.Object, "error", e.Err)
				return
			}
			logger.Debug("handler done", "handler", e.Handler, "phase", e.Phase, "object", e.Object, "duration", e.Duration)
		},
		OnConflict: func(e *runtime.HandlerConflictError) {
			logger.Error("handler conflict", "field", e.Field, "owner", e.Owner, "handler", e.Handler)
		},
	}
}
