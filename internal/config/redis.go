package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// OpenRedis اتصال به Redis را راه‌اندازی و با Ping بررسی می‌کند
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,     // آدرس Redis
		Password: password, // رمز عبور
		DB:       db,       // شماره دیتابیس
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}
	return client, nil
}
