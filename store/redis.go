package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis shares the selected method across processes and survives restarts.
type Redis struct {
	rdb         redis.UniversalClient
	ns          string // logical namespace to avoid collisions
	closeClient bool
}

var _ Store = (*Redis)(nil)

// NewRedis creates a Redis-backed store. Close leaves the client open.
func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace}
}

// NewRedisOwned is like NewRedis but Close also closes client.
func NewRedisOwned(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace, closeClient: true}
}

func (s *Redis) key() string { return "subcipher:" + s.ns + ":" + Key }

func (s *Redis) Load(ctx context.Context) (string, bool, error) {
	res, err := s.rdb.Get(ctx, s.key()).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return res, true, nil
}

func (s *Redis) Save(ctx context.Context, name string) error {
	return s.rdb.Set(ctx, s.key(), name, 0).Err()
}

func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return err
		}
	}
	return nil
}
