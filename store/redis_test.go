package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisUnreachableReturnsErrors(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewRedisOwned(rdb, "test")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.Save(ctx, "naive"); err == nil {
		t.Fatal("Save against closed port must fail")
	}
	if _, ok, err := s.Load(ctx); err == nil || ok {
		t.Fatalf("Load ok=%v err=%v want error", ok, err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestRedisKeyIsNamespaced(t *testing.T) {
	s := NewRedis(nil, "app:prod")
	if got := s.key(); got != "subcipher:app:prod:method" {
		t.Fatalf("key=%q", got)
	}
}
