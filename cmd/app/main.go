package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	dbadapter "blog/internal/adapters/database"
	"blog/internal/adapters/httpapi"
	memadapter "blog/internal/adapters/memory"
	redisadapter "blog/internal/adapters/redis"
	"blog/internal/config"
	postapp "blog/internal/core/post/service"
	userapp "blog/internal/core/user/service"
	postPort "blog/internal/ports/post"
	userPort "blog/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, envLoaded, err := config.Load() // بارگذاری تنظیمات از .env
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync() // flush buffer

	if !envLoaded {
		logger.Info("No .env file found, using system environment variables")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		userRepo userPort.UserRepository
		postRepo postPort.PostRepository
		tokens   userPort.TokenStore
	)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		users := memadapter.NewUserRepositoryMemory()
		userRepo = users
		postRepo = memadapter.NewPostRepositoryMemory(users)
		tokens = memadapter.NewTokenStoreMemory()
		logger.Warn("Using in-memory store; data is lost on restart")

	default:
		// اتصال به دیتابیس و اجرای مایگریشن‌ها
		db, err := config.OpenDB(cfg.DBDSN)
		if err != nil {
			logger.Fatal("Database connection failed", zap.Error(err))
		}
		defer func() {
			if err := config.CloseDB(db); err != nil {
				logger.Error("Error closing database connection", zap.Error(err))
			}
		}()

		if err := dbadapter.AutoMigrate(db); err != nil {
			logger.Fatal("Error during migrations", zap.Error(err))
		}
		logger.Info("Database migrations completed")

		// اتصال به Redis
		redisClient, err := config.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("Redis connection failed", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis connection", zap.Error(err))
			}
		}()

		userRepo = dbadapter.NewUserRepositoryDatabase(db)            // آداپتر خروجی
		postRepo = dbadapter.NewPostRepositoryDatabase(db)            // آداپتر خروجی
		tokens = redisadapter.NewTokenStoreRedis(redisClient, logger) // آداپتر خروجی
	}

	userSvc := userapp.NewUserService(userRepo, tokens, []byte(cfg.JWTSecret), logger) // یوزکیس/سرویس
	postSvc := postapp.NewPostService(postRepo, userRepo, logger)                      // یوزکیس/سرویس
	r := httpapi.SetupRoutes(userSvc, postSvc, logger)                                 // تزریق یوزکیس به آداپتر ورودی

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}
