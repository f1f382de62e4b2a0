// Package bootstrap is the owning layer for an Engine: it turns a
// config.Config into a logger, a persistence store and an engine, and performs
// the one-time read-back of the persisted method at startup.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/subcipher"
	"github.com/unkn0wn-root/subcipher/config"
	logzap "github.com/unkn0wn-root/subcipher/log/zap"
	"github.com/unkn0wn-root/subcipher/method"
	"github.com/unkn0wn-root/subcipher/provider/bigcache"
	redisprov "github.com/unkn0wn-root/subcipher/provider/redis"
	"github.com/unkn0wn-root/subcipher/provider/ristretto"
	"github.com/unkn0wn-root/subcipher/store"
)

// Runtime bundles what Open built. Close releases all of it.
type Runtime struct {
	Engine subcipher.Engine
	Store  store.Store // nil when store.kind is none
	Logger *zap.Logger

	// Restored is the method name re-bound from the store at startup, if any.
	Restored string
}

type Option func(*options)

type options struct {
	hooks  subcipher.Hooks
	logger *zap.Logger
}

// WithHooks installs engine hooks (wrap slow sinks with hooks/async).
func WithHooks(h subcipher.Hooks) Option { return func(o *options) { o.hooks = h } }

// WithLogger skips building a logger from cfg.Log.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	zl := o.logger
	if zl == nil {
		var err error
		if zl, err = logzap.Setup(cfg.Log); err != nil {
			return nil, fmt.Errorf("bootstrap: logger: %w", err)
		}
	}
	log := logzap.Logger{L: zl.Named("subcipher")}

	policy, err := subcipher.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: store %s: %w", cfg.Store.Kind, err)
	}

	rt := &Runtime{Store: st, Logger: zl}
	engOpts := subcipher.Options{
		Policy:         policy,
		DefaultMethod:  cfg.DefaultMethod,
		Store:          st,
		PersistTimeout: cfg.PersistTimeout,
		Logger:         log,
		Hooks:          o.hooks,
	}

	// Scoped engines have no shared cell to restore into; the persisted
	// method becomes the default each new scope starts with. It wins over
	// default_method, as Restore does under the global policy.
	if policy == subcipher.PolicyScoped && st != nil {
		name, ok, err := st.Load(ctx)
		switch {
		case err != nil:
			log.Warn("read persisted method failed", subcipher.Fields{"err": err})
		case ok:
			if _, perr := method.Parse(name); perr != nil {
				log.Warn("ignoring unknown persisted method", subcipher.Fields{"name": name})
			} else {
				engOpts.DefaultMethod = name
				rt.Restored = name
			}
		}
	}

	eng, err := subcipher.New(engOpts)
	if err != nil {
		closeStore(ctx, st)
		return nil, err
	}
	rt.Engine = eng

	if policy == subcipher.PolicyGlobal && st != nil {
		ok, err := subcipher.Restore(ctx, eng, st)
		switch {
		case err != nil:
			log.Warn("restore persisted method failed", subcipher.Fields{"err": err})
		case ok:
			if m, err := eng.Current(ctx); err == nil {
				rt.Restored = m.String()
			}
		}
	}

	log.Info("engine ready", subcipher.Fields{
		"policy":   policy.String(),
		"store":    storeKind(cfg.Store.Kind),
		"restored": rt.Restored,
	})
	return rt, nil
}

// Close closes the engine (and its store) and flushes the logger.
func (r *Runtime) Close(ctx context.Context) error {
	var err error
	if r.Engine != nil {
		err = r.Engine.Close(ctx)
	}
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}
	return err
}

func storeKind(kind string) string {
	k := strings.ToLower(strings.TrimSpace(kind))
	if k == "" {
		return "none"
	}
	return k
}

func openStore(ctx context.Context, c config.StoreConfig) (store.Store, error) {
	switch storeKind(c.Kind) {
	case "none":
		return nil, nil
	case "local":
		return store.NewLocal(), nil
	case "redis":
		return store.NewRedisOwned(redisClient(c.Redis), c.Namespace), nil
	case "redis-record":
		codec, err := store.RecordCodec(c.Codec)
		if err != nil {
			return nil, err
		}
		p, err := redisprov.New(redisprov.Config{
			Client: redisClient(c.Redis),
			Prefix: "rec:",
			Owned:  true,
		})
		if err != nil {
			return nil, err
		}
		return store.NewProvider(p, c.Namespace, codec), nil
	case "sqlite":
		return store.OpenSQLite(ctx, c.SQLite.Path)
	case "bigcache":
		codec, err := store.RecordCodec(c.Codec)
		if err != nil {
			return nil, err
		}
		p, err := bigcache.New(bigcache.Config{})
		if err != nil {
			return nil, err
		}
		return store.NewProvider(p, c.Namespace, codec), nil
	case "ristretto":
		codec, err := store.RecordCodec(c.Codec)
		if err != nil {
			return nil, err
		}
		p, err := ristretto.New(ristretto.Config{})
		if err != nil {
			return nil, err
		}
		return store.NewProvider(p, c.Namespace, codec), nil
	}
	return nil, fmt.Errorf("unknown kind %q", c.Kind)
}

func redisClient(c config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
}

func closeStore(ctx context.Context, st store.Store) {
	if st != nil {
		_ = st.Close(ctx)
	}
}
