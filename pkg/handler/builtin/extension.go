package builtin

import (
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/handler"
	"github.com/aretw0/canvasdoc/pkg/host"
)

// extension holds what every per-kind handler shares: its name and the
// extension key, which is also the host type it applies to.
type extension struct {
	name string
	key  string
}

func (e extension) Name() string  { return e.name }
func (e extension) Priority() int { return handler.PriorityExtension }

func (e extension) CanSerialize(obj host.Object) bool {
	return obj.Type() == e.key
}

func (e extension) CanDeserialize(rec *document.Record) bool {
	_, ok := rec.Extension(e.key)
	return ok
}

// patch wraps state as the handler's only contribution.
func (e extension) patch(state any) (*document.Record, error) {
	var m map[string]any
	if err := mapstructure.Decode(state, &m); err != nil {
		return nil, fmt.Errorf("%s: encode state: %w", e.key, err)
	}
	rec := &document.Record{}
	rec.SetExtension(e.key, m)
	return rec, nil
}

// decode reads the extension entry into out. Values are weakly typed so
// entries read back from JSON or YAML decode the same way.
func (e extension) decode(rec *document.Record, out any) error {
	raw, ok := rec.Extension(e.key)
	if !ok {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%s: decode state: %w", e.key, err)
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func getFloat(b host.PropertyBridge, names ...string) (float64, error) {
	v, name, err := host.GetFirst(b, names...)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("property %s: not a finite number: %v", name, v)
	}
	return f, nil
}

func getString(b host.PropertyBridge, names ...string) (string, error) {
	v, name, err := host.GetFirst(b, names...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("property %s: expected string, got %T", name, v)
	}
	return s, nil
}

func getBool(b host.PropertyBridge, names ...string) (bool, error) {
	v, name, err := host.GetFirst(b, names...)
	if err != nil {
		return false, err
	}
	on, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, v)
	}
	return on, nil
}
