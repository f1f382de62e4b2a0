// Package redis stores encoded method records in Redis. Unlike store.Redis,
// which keeps the bare name, values here are whatever the record codec
// produced, so the selection timestamp survives restarts too.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/subcipher/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

type Provider struct {
	rdb    goredis.UniversalClient
	prefix string
	owned  bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	Client goredis.UniversalClient
	// Prefix is prepended to every key, e.g. "subcipher:rec:".
	Prefix string
	// Owned closes Client on Close; set only when nothing else shares it.
	Owned bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Provider{rdb: cfg.Client, prefix: cfg.Prefix, owned: cfg.Owned}, nil
}

func (p *Provider) k(key string) string { return p.prefix + key }

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, p.k(key)).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("redis provider: get %s: %w", p.k(key), err)
	}
	return b, true, nil
}

// Set ignores cost; Redis has no admission policy. ttl <= 0 means no expiry.
func (p *Provider) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	if err := p.rdb.Set(ctx, p.k(key), value, ttl).Err(); err != nil {
		return false, fmt.Errorf("redis provider: set %s: %w", p.k(key), err)
	}
	return true, nil
}

func (p *Provider) Del(ctx context.Context, key string) error {
	if err := p.rdb.Del(ctx, p.k(key)).Err(); err != nil {
		return fmt.Errorf("redis provider: del %s: %w", p.k(key), err)
	}
	return nil
}

func (p *Provider) Close(context.Context) error {
	if !p.owned {
		return nil
	}
	if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
