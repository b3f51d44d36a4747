package services

import (
	"context"
	"fmt"
	"time"

	"rentride/internal/models"
	"rentride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	Publish(ctx context.Context, channel string, message interface{}) error

	// Application-specific cache operations
	CacheUser(ctx context.Context, user *models.User, expiration time.Duration) error
	GetCachedUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	InvalidateUser(ctx context.Context, userID primitive.ObjectID) error

	CacheVehicle(ctx context.Context, vehicle *models.Vehicle, expiration time.Duration) error
	GetCachedVehicle(ctx context.Context, vehicleID primitive.ObjectID) (*models.Vehicle, error)
	InvalidateVehicle(ctx context.Context, vehicleID primitive.ObjectID) error

	Ping(ctx context.Context) error
}

// RedisClient is the slice of the Redis wrapper the cache service uses.
type RedisClient interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	Publish(ctx context.Context, channel string, message interface{}) error
	Ping(ctx context.Context) error
}

type cacheService struct {
	redisClient RedisClient
	logger      *logger.Logger
	defaultTTL  time.Duration
	keyPrefix   string
}

func NewCacheService(redisClient RedisClient, logger *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		redisClient: redisClient,
		logger:      logger,
		keyPrefix:   keyPrefix,
		defaultTTL:  defaultTTL,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	fullKey := s.buildKey(key)

	if err := s.redisClient.Get(ctx, fullKey, dest); err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	fullKey := s.buildKey(key)

	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.redisClient.Set(ctx, fullKey, value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.redisClient.Delete(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redisClient.Exists(ctx, s.buildKey(key))
}

func (s *cacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	return s.redisClient.SetNX(ctx, s.buildKey(key), value, expiration)
}

func (s *cacheService) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return s.redisClient.SetExpire(ctx, s.buildKey(key), expiration)
}

func (s *cacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return s.redisClient.GetTTL(ctx, s.buildKey(key))
}

func (s *cacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	return s.redisClient.Publish(ctx, channel, message)
}

// Application-specific cache operations
func (s *cacheService) CacheUser(ctx context.Context, user *models.User, expiration time.Duration) error {
	key := fmt.Sprintf("user:%s", user.ID.Hex())
	return s.Set(ctx, key, user, expiration)
}

func (s *cacheService) GetCachedUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	key := fmt.Sprintf("user:%s", userID.Hex())
	var user models.User

	if err := s.Get(ctx, key, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *cacheService) InvalidateUser(ctx context.Context, userID primitive.ObjectID) error {
	return s.Delete(ctx, fmt.Sprintf("user:%s", userID.Hex()))
}

func (s *cacheService) CacheVehicle(ctx context.Context, vehicle *models.Vehicle, expiration time.Duration) error {
	key := fmt.Sprintf("vehicle:%s", vehicle.ID.Hex())
	return s.Set(ctx, key, vehicle, expiration)
}

func (s *cacheService) GetCachedVehicle(ctx context.Context, vehicleID primitive.ObjectID) (*models.Vehicle, error) {
	key := fmt.Sprintf("vehicle:%s", vehicleID.Hex())
	var vehicle models.Vehicle

	if err := s.Get(ctx, key, &vehicle); err != nil {
		return nil, err
	}

	return &vehicle, nil
}

func (s *cacheService) InvalidateVehicle(ctx context.Context, vehicleID primitive.ObjectID) error {
	return s.Delete(ctx, fmt.Sprintf("vehicle:%s", vehicleID.Hex()))
}

func (s *cacheService) Ping(ctx context.Context) error {
	return s.redisClient.Ping(ctx)
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix != "" {
		return fmt.Sprintf("%s:%s", s.keyPrefix, key)
	}
	return key
}
