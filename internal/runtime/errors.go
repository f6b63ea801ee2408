package runtime

import (
	"fmt"
	"strconv"
)

// Phase names the handler step that was running.
type Phase string

const (
	PhaseSerialize   Phase = "serialize"
	PhaseDeserialize Phase = "deserialize"
	PhasePostPlace   Phase = "post_place"
)

// HandlerConflictError reports two handlers setting one field to different
// values. It is fatal for the record being serialized.
type HandlerConflictError struct {
	Field    string // e.g. "Name", "Inputs[A].Access", "State.Extensions[gh.panel]"
	Existing any    // Value already merged
	Rejected any    // Value from the later handler
	Owner    string // Handler that set Existing
	Handler  string // Handler whose patch was rejected
}

func (e *HandlerConflictError) Error() string {
	return fmt.Sprintf("handler conflict on %s: %q set %s, %q tried %s", e.Field, e.Owner, show(e.Existing), e.Handler, show(e.Rejected))
}

func show(v any) string {
	switch s := v.(type) {
	case string:
		return strconv.Quote(s)
	case fmt.Stringer:
		return strconv.Quote(s.String())
	default:
		return fmt.Sprintf("%v", v)
	}
}

// HandlerExecutionError wraps an error returned or panic raised by one handler.
// The runtime records it and moves on to the next handler.
type HandlerExecutionError struct {
	Handler string
	Phase   Phase
	Err     error
	Panic   bool
}

func (e *HandlerExecutionError) Error() string {
	if e.Panic {
		return fmt.Sprintf("handler %s panicked during %s: %v", e.Handler, e.Phase, e.Err)
	}
	return fmt.Sprintf("handler %s failed during %s: %v", e.Handler, e.Phase, e.Err)
}

func (e *HandlerExecutionError) Unwrap() error {
	return e.Err
}
