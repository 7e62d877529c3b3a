package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	flashKeySuffix   = ":flash"
)

// RedisStore shares flash state across instances. Sessions and flash slots
// live under TTL keys so Redis handles expiry; TakeFlash uses GETDEL so the
// read-once semantics hold under concurrent requests.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id uuid.UUID) string   { return sessionKeyPrefix + id.String() }
func flashSlotKey(id uuid.UUID) string { return sessionKeyPrefix + id.String() + flashKeySuffix }

func (s *RedisStore) Init(ctx context.Context, sess Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	return nil
}

func (s *RedisStore) SetFlash(ctx context.Context, id uuid.UUID, message string, ttl time.Duration) error {
	if err := s.client.Set(ctx, flashSlotKey(id), message, ttl).Err(); err != nil {
		return fmt.Errorf("set flash: %w", err)
	}
	return nil
}

func (s *RedisStore) TakeFlash(ctx context.Context, id uuid.UUID) (string, error) {
	msg, err := s.client.GetDel(ctx, flashSlotKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("take flash: %w", err)
	}
	return msg, nil
}
