package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/ports"
)

type lockingMiddleware struct {
	next   ports.DocumentStore
	locker ports.DistributedLocker
	ttl    time.Duration
}

// NewLockingMiddleware holds a per-id lock around Save and Delete so that
// concurrent writers to one document are serialized.
func NewLockingMiddleware(locker ports.DistributedLocker, ttl time.Duration) Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &lockingMiddleware{next: next, locker: locker, ttl: ttl}
	}
}

func (m *lockingMiddleware) withLock(ctx context.Context, id string, fn func() error) (err error) {
	unlock, err := m.locker.Lock(ctx, id, m.ttl)
	if err != nil {
		return fmt.Errorf("lock %s: %w", id, err)
	}
	defer func() {
		if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil && err == nil {
			err = fmt.Errorf("unlock %s: %w", id, uerr)
		}
	}()
	return fn()
}

func (m *lockingMiddleware) Save(ctx context.Context, id string, doc *document.Document) error {
	return m.withLock(ctx, id, func() error { return m.next.Save(ctx, id, doc) })
}

func (m *lockingMiddleware) Load(ctx context.Context, id string) (*document.Document, error) {
	return m.next.Load(ctx, id)
}

func (m *lockingMiddleware) Delete(ctx context.Context, id string) error {
	return m.withLock(ctx, id, func() error { return m.next.Delete(ctx, id) })
}

func (m *lockingMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
