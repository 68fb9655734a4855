package continuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "continuation:"

// RedisStore переживает перезапуск бота; ttl 0 - без срока жизни
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

func (s *RedisStore) Register(ctx context.Context, chatID int64, c Continuation) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not marshal continuation: %w", err)
	}
	if err := s.client.Set(ctx, key(chatID), string(payload), s.ttl).Err(); err != nil {
		return fmt.Errorf("could not save continuation of chat %d: %w", chatID, err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, chatID int64) (Continuation, bool, error) {
	return s.load(s.client.GetDel(ctx, key(chatID)), chatID)
}

func (s *RedisStore) Get(ctx context.Context, chatID int64) (Continuation, bool, error) {
	return s.load(s.client.Get(ctx, key(chatID)), chatID)
}

func (s *RedisStore) load(cmd *redis.StringCmd, chatID int64) (Continuation, bool, error) {
	value, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return Continuation{}, false, nil
	}
	if err != nil {
		return Continuation{}, false, fmt.Errorf("could not load continuation of chat %d: %w", chatID, err)
	}

	var c Continuation
	if err := json.Unmarshal([]byte(value), &c); err != nil {
		return Continuation{}, false, fmt.Errorf("could not decode continuation of chat %d: %w", chatID, err)
	}
	return c, true, nil
}

func (s *RedisStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, key(chatID)).Err(); err != nil {
		return fmt.Errorf("could not clear continuation of chat %d: %w", chatID, err)
	}
	return nil
}
