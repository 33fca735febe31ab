package storage

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: 30 * 24 * time.Hour,
	}
}

// RedisStore keeps cart slots as JSON values under a cart: key prefix.
// Slots expire after the base TTL plus jitter so abandoned carts age out.
type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisStore) Save(ctx context.Context, slot string, rec CartRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	jitter := time.Duration(rand.Intn(60)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, slotKey(slot), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, slot string) (CartRecord, error) {
	data, err := r.client.Get(ctx, slotKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return CartRecord{}, ErrSlotNotFound
	}
	if err != nil {
		return CartRecord{}, fmt.Errorf("redis get failed: %w", err)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		// Corrupt slot: clear it so the next load starts clean.
		_ = r.client.Del(ctx, slotKey(slot)).Err()
		return CartRecord{}, ErrSlotNotFound
	}
	return rec, nil
}

func (r *RedisStore) Delete(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, slotKey(slot)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func slotKey(slot string) string {
	return fmt.Sprintf("cart:%s", slot)
}
