package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"prompt-refiner/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisUserStore implements UserStore
var _ UserStore = (*redisUserStore)(nil)

const userKeyPrefix = "user:"

type redisUserStore struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisUserStore creates a Redis-backed UserStore. Each user is a JSON value
// under user:<email>; SETNX gives the atomic insert.
func NewRedisUserStore(client redis.UniversalClient, logger *zap.Logger) UserStore {
	return &redisUserStore{
		client: client,
		logger: logger.Named("RedisUserStore"),
	}
}

func userKey(email string) string {
	return userKeyPrefix + email
}

func (r *redisUserStore) Get(ctx context.Context, email string) (*models.User, error) {
	data, err := r.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user from redis", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to get user from redis: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}
	return &user, nil
}

func (r *redisUserStore) InsertIfAbsent(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	inserted, err := r.client.SetNX(ctx, userKey(user.Email), data, 0).Result()
	if err != nil {
		r.logger.Error("Failed to insert user into redis", zap.String("email", user.Email), zap.Error(err))
		return fmt.Errorf("failed to insert user into redis: %w", err)
	}
	if !inserted {
		r.logger.Warn("Attempted to create duplicate user", zap.String("email", user.Email))
		return models.ErrUserAlreadyExists
	}
	r.logger.Info("User created", zap.String("userID", user.ID.String()))
	return nil
}
