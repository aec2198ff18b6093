package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cedricworldwide/CuriosityQuest/internal/auth"
	"github.com/cedricworldwide/CuriosityQuest/internal/models"
)

const redisUserKeyPrefix = "user:"

// RedisStore implements Users on a Redis key-value backend. Each user is
// one JSON blob keyed by email; SETNX guards duplicate registration.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a user store backed by Redis
func NewRedisStore(ctx context.Context, address, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func userKey(email string) string {
	return redisUserKeyPrefix + email
}

// Create registers a new user; SETNX rejects an existing email
func (s *RedisStore) Create(ctx context.Context, email, password, displayName string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayNameOrDefault(email, displayName),
		Points:       0,
		Badges:       []string{},
		CreatedAt:    time.Now().UTC(),
	}

	data, err := marshalUser(user)
	if err != nil {
		return nil, err
	}

	created, err := s.client.SetNX(ctx, userKey(email), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if !created {
		return nil, ErrAlreadyExists
	}

	return user, nil
}

// Authenticate validates credentials against the stored hash
func (s *RedisStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get retrieves a user by email
func (s *RedisStore) Get(ctx context.Context, email string) (*models.User, error) {
	data, err := s.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return unmarshalUser(data)
}

// Reward applies the points/badge mutation inside a WATCH transaction so
// concurrent rewards against the same key retry instead of losing updates
func (s *RedisStore) Reward(ctx context.Context, email string, points *int, badge string) (*models.RewardResult, error) {
	if points != nil && *points < 0 {
		return nil, ErrNegativePoints
	}

	key := userKey(email)
	var result *models.RewardResult

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}

		user, err := unmarshalUser(data)
		if err != nil {
			return err
		}

		if points != nil {
			user.Points += *points
		}
		user.Badges = appendBadge(user.Badges, badge)

		updated, err := marshalUser(user)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		if err != nil {
			return err
		}

		result = &models.RewardResult{
			Points: user.Points,
			Badges: cloneBadges(user.Badges),
		}
		return nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to apply reward: %w", err)
	}
	return nil, fmt.Errorf("failed to apply reward: too many conflicts")
}

// Ping verifies Redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// redisUser is the stored shape; User.PasswordHash carries `json:"-"` so
// it needs an explicit field here
type redisUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func marshalUser(user *models.User) ([]byte, error) {
	data, err := json.Marshal(redisUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}
	return data, nil
}

func unmarshalUser(data []byte) (*models.User, error) {
	var stored redisUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	user := stored.User
	user.PasswordHash = stored.PasswordHash
	if user.Badges == nil {
		user.Badges = []string{}
	}
	return &user, nil
}
