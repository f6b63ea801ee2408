package runtime

import (
	"time"

	"github.com/google/uuid"
)

// HandlerEvent describes one handler invocation.
type HandlerEvent struct {
	Handler  string
	Phase    Phase
	Object   uuid.UUID     // Instance id of the live object
	Duration time.Duration // Set on done events
	Err      error         // Set on done events when the handler failed
}

// Hooks defines callbacks for orchestrator observability.
// Any of them may be nil.
type Hooks struct {
	OnHandlerStart func(*HandlerEvent)
	OnHandlerDone  func(*HandlerEvent)
	OnConflict     func(*HandlerConflictError)
}

// Chain returns hooks that call each of hs in order.
func Chain(hs ...Hooks) Hooks {
	return Hooks{
		OnHandlerStart: func(e *HandlerEvent) {
			for _, h := range hs {
				if h.OnHandlerStart != nil {
					h.OnHandlerStart(e)
				}
			}
		},
		OnHandlerDone: func(e *HandlerEvent) {
			for _, h := range hs {
				if h.OnHandlerDone != nil {
					h.OnHandlerDone(e)
				}
			}
		},
		OnConflict: func(e *HandlerConflictError) {
			for _, h := range hs {
				if h.OnConflict != nil {
					h.OnConflict(e)
				}
			}
		},
	}
}
