package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/host"
)

// Item pairs a stored record with the live object it is applied to.
type Item struct {
	Record *document.Record
	Object host.Object
}

// SerializeAll serializes every object. A failing object is reported in the
// joined error and left out of the returned records; the rest still run.
func (o *Orchestrator) SerializeAll(objs []host.Object) ([]*document.Record, error) {
	recs := make([]*document.Record, 0, len(objs))
	var errs []error
	for i, obj := range objs {
		rec, err := o.Serialize(obj)
		if err != nil {
			errs = append(errs, fmt.Errorf("object %d%s: %w", i, label(obj), err))
			continue
		}
		recs = append(recs, rec)
	}
	return recs, errors.Join(errs...)
}

// DeserializeAll applies every item. Results line up with items; an entry is
// nil when its item could not be processed at all.
func (o *Orchestrator) DeserializeAll(items []Item) ([]*Result, error) {
	out := make([]*Result, len(items))
	var errs []error
	for i, it := range items {
		res, err := o.Deserialize(it.Record, it.Object)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d%s: %w", i, label(it.Object), err))
			continue
		}
		out[i] = res
	}
	return out, errors.Join(errs...)
}

func label(obj host.Object) string {
	if obj == nil {
		return ""
	}
	return fmt.Sprintf(" (%s %s)", obj.Name(), obj.InstanceGUID())
}
