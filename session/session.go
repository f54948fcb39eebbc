// Package session is the single place session state lives. Consumers depend
// on the Repository interface, never on concrete storage, and say which tier
// they want: ephemeral sessions die quickly, durable ones survive a
// "remember me" login.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gatherly/models"

	"github.com/redis/go-redis/v9"
)

// Tier selects how long a stored session lives.
type Tier int

const (
	Ephemeral Tier = iota
	Durable
)

const (
	EphemeralTTL = 12 * time.Hour
	DurableTTL   = 30 * 24 * time.Hour
)

var ErrNotFound = errors.New("session not found")

func (t Tier) TTL() time.Duration {
	if t == Durable {
		return DurableTTL
	}
	return EphemeralTTL
}

// Repository stores sessions keyed by token.
type Repository interface {
	Get(ctx context.Context, token string) (*models.Session, error)
	Set(ctx context.Context, token string, s *models.Session, tier Tier) error
	Clear(ctx context.Context, token string) error
}

// RedisRepository is the production store.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func key(token string) string { return "session:" + token }

func (r *RedisRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.client.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &s, nil
}

func (r *RedisRepository) Set(ctx context.Context, token string, s *models.Session, tier Tier) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	return r.client.Set(ctx, key(token), data, tier.TTL()).Err()
}

func (r *RedisRepository) Clear(ctx context.Context, token string) error {
	return r.client.Del(ctx, key(token)).Err()
}
