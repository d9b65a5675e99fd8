package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config تنظیمات برنامه که از .env یا متغیرهای محیطی خوانده می‌شود
type Config struct {
	Env             string
	Port            string
	StoreDriver     string
	DBDSN           string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	ShutdownTimeout time.Duration
}

// Load بارگذاری تنظیمات؛ نبودن .env خطا نیست
func Load() (*Config, bool, error) {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{
		Env:             getenv("APP_ENV", "development"),
		Port:            getenv("APP_PORT", "8080"),
		StoreDriver:     strings.ToLower(getenv("STORE_DRIVER", StoreMySQL)),
		DBDSN:           os.Getenv("DB_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ShutdownTimeout: 10 * time.Second,
	}

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0 // مقدار پیش‌فرض دیتابیس Redis
	}
	cfg.RedisDB = redisDB

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, envLoaded, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		cfg.ShutdownTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, envLoaded, err
	}
	return cfg, envLoaded, nil
}

// Validate بررسی مقادیر اجباری
func (c *Config) Validate() error {
	var missing []string

	switch c.StoreDriver {
	case StoreMySQL:
		if c.DBDSN == "" {
			missing = append(missing, "DB_DSN")
		}
		if c.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
