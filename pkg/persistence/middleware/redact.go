package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/ports"
)

// Mask replaces redacted extension values.
const Mask = "***"

type redactMiddleware struct {
	next     ports.DocumentStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware masks extension entries, at any nesting depth, whose key
// matches one of the patterns. It applies to component state extensions and
// document extensions; the caller's document is left untouched.
func NewRedactMiddleware(patterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled[i] = re
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &redactMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, id string, doc *document.Document) error {
	cloned := doc.Clone()
	cloned.Extensions = m.mask(cloned.Extensions)
	for i := range cloned.Components {
		if st := cloned.Components[i].State; st != nil {
			st.Extensions = m.mask(st.Extensions)
		}
	}
	return m.next.Save(ctx, id, cloned)
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*document.Document, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// mask returns a masked deep copy of in.
func (m *redactMiddleware) mask(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch {
		case m.matches(k):
			out[k] = Mask
		default:
			if sub, ok := v.(map[string]any); ok {
				v = m.mask(sub)
			}
			out[k] = v
		}
	}
	return out
}

func (m *redactMiddleware) matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
