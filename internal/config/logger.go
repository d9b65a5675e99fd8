package config

import (
	"go.uber.org/zap"
)

// NewLogger برای production لاگ JSON و برای بقیه لاگ توسعه
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
