package canvasdoc

import (
	"fmt"
	"time"

	"github.com/aretw0/canvasdoc/pkg/adapters/file"
	"github.com/aretw0/canvasdoc/pkg/adapters/memory"
	"github.com/aretw0/canvasdoc/pkg/adapters/redis"
	"github.com/aretw0/canvasdoc/pkg/config"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/persistence/middleware"
	"github.com/aretw0/canvasdoc/pkg/ports"
)

// LockTTL bounds how long a Redis-backed store holds a document lock.
const LockTTL = 10 * time.Second

// OpenStore builds the document store described by cfg and wraps it with the
// configured middleware: locking for Redis, then redaction, then encryption
// closest to the backend. The returned close function releases the backend.
func OpenStore(cfg *config.Config) (ports.DocumentStore, func() error, error) {
	var (
		base    ports.DocumentStore
		mws     []middleware.Middleware
		closeFn = func() error { return nil }
	)

	switch cfg.Store.Kind {
	case config.StoreMemory:
		base = memory.NewStore()
	case config.StoreFile:
		format, err := document.ParseFormat(cfg.Store.Format)
		if err != nil {
			return nil, nil, err
		}
		base = file.New(cfg.Store.Dir, file.WithFormat(format))
	case config.StoreRedis:
		r := cfg.Store.Redis
		rs := redis.New(r.Addr, r.Password, r.DB, redis.WithPrefix(r.Prefix), redis.WithTTL(r.TTL))
		base = rs
		closeFn = rs.Close
		mws = append(mws, middleware.NewLockingMiddleware(redis.NewLocker(rs.Client(), r.Prefix), LockTTL))
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}

	if len(cfg.Redact) > 0 {
		redact, err := middleware.NewRedactMiddleware(cfg.Redact)
		if err != nil {
			_ = closeFn()
			return nil, nil, err
		}
		mws = append(mws, redact)
	}

	key, err := cfg.Key()
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	if key != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}

	return middleware.Chain(base, mws...), closeFn, nil
}

// ConfigOptions translates cfg into converter options.
func ConfigOptions(cfg *config.Config) []Option {
	version := cfg.Generator.Version
	if version == "" {
		version = Version
	}
	opts := []Option{
		WithGenerator(cfg.Generator.Name, version),
		WithSchemaVersion(cfg.SchemaVersion),
	}
	if len(cfg.DisabledHandlers) > 0 {
		opts = append(opts, WithoutHandlers(cfg.DisabledHandlers...))
	}
	return opts
}
