package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "revoked_token:"

// TokenStoreRedis شناسه‌ی توکن‌های logout شده با TTL برابر باقی‌مانده‌ی اعتبار توکن
type TokenStoreRedis struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewTokenStoreRedis(client *redis.Client, logger *zap.Logger) *TokenStoreRedis {
	return &TokenStoreRedis{
		Client: client,
		Logger: logger,
	}
}

func (r *TokenStoreRedis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedKeyPrefix + tokenID
	if err := r.Client.Set(ctx, key, 1, ttl).Err(); err != nil {
		return err
	}
	r.Logger.Info("Token revoked", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *TokenStoreRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
