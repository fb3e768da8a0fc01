// File: services/assistant/history.go
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"baturite/models"

	"github.com/go-redis/redis/v8"
)

const historyKeyPrefix = "assistant:history:"

// HistoryStore persists the full transcript of one conversation, overwritten
// wholesale on every mutation.
type HistoryStore interface {
	Load(ctx context.Context, userID string) ([]models.ChatMessage, error)
	Save(ctx context.Context, userID string, messages []models.ChatMessage) error
	Clear(ctx context.Context, userID string) error
}

// RedisHistoryStore keeps transcripts as JSON blobs with a TTL, the backend
// analog of tab-scoped session storage.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func (s *RedisHistoryStore) Load(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	key := historyKeyPrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *RedisHistoryStore) Save(ctx context.Context, userID string, messages []models.ChatMessage) error {
	key := historyKeyPrefix + userID
	b, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisHistoryStore) Clear(ctx context.Context, userID string) error {
	key := historyKeyPrefix + userID
	return s.client.Del(ctx, key).Err()
}
