// File: services/session/store.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rescuehub/models"
	"rescuehub/utils"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a session is missing or expired.
var ErrSessionNotFound = errors.New("triage session not found or expired")

// RedisSessionStore keeps each caller's triage session in Redis with a TTL.
// An abandoned session simply expires; nothing else cleans it up.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = utils.DefaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.TriageSession, error) {
	key := utils.SessionKeyPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess models.TriageSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.TriageSession) error {
	sess.UpdatedAt = time.Now().UTC()
	key := utils.SessionKeyPrefix + sess.ID
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	key := utils.SessionKeyPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
