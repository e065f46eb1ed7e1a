// Package dedup drops duplicate webhook deliveries by provider message id.
// Best-effort on top of the workflow's own idempotency: the workflow
// converges on duplicates anyway, this just saves the round trips.
package dedup

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func Ping(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}

// FirstSeen records the provider message id and reports whether this is the
// first delivery. Fails open: if Redis is down, processing a duplicate is
// safer than dropping a first delivery.
func (s *Store) FirstSeen(ctx context.Context, providerMsgID string) bool {
	if providerMsgID == "" {
		return true
	}
	ok, err := s.rdb.SetNX(ctx, "wa:msg:"+providerMsgID, 1, s.ttl).Result()
	if err != nil {
		log.Printf("[dedup] redis setnx error: %v", err)
		return true
	}
	return ok
}
