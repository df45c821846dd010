package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentrongphuc/python-api-development/internal/config"
	"github.com/nguyentrongphuc/python-api-development/internal/database"
	"github.com/nguyentrongphuc/python-api-development/internal/domain"
	"github.com/nguyentrongphuc/python-api-development/internal/handler"
	"github.com/nguyentrongphuc/python-api-development/internal/logger"
	"github.com/nguyentrongphuc/python-api-development/internal/middleware"
	"github.com/nguyentrongphuc/python-api-development/internal/ratelimit"
	"github.com/nguyentrongphuc/python-api-development/internal/repository/memory"
	"github.com/nguyentrongphuc/python-api-development/internal/repository/postgres"
	"github.com/nguyentrongphuc/python-api-development/internal/server"
	"github.com/nguyentrongphuc/python-api-development/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	// Initialize store
	var (
		categoryRepo domain.CategoryRepository
		questionRepo domain.QuestionRepository
		pinger       handler.Pinger
	)
	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewSampleStore()
		categoryRepo, questionRepo, pinger = store.Categories(), store.Questions(), store
		zl.Warn("using in-memory store, data is lost on exit")
	default:
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			zl.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		categoryRepo = postgres.NewCategoryRepository(pool)
		questionRepo = postgres.NewQuestionRepository(pool)
		pinger = pool
	}

	// Initialize rate limiter
	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled() {
		redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			zl.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		limiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	triviaService := service.NewTriviaService(categoryRepo, questionRepo)

	e := server.New(server.Options{
		Log:     zl,
		Trivia:  triviaService,
		Store:   pinger,
		Metrics: middleware.NewMetrics(),
		Limiter: limiter,
	})

	// Start server
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.Store))
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zl.Error("failed to shut down server", zap.Error(err))
	}
}
