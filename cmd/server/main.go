package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/authapi/config"
	"github.com/ErlanBelekov/authapi/internal/health"
	"github.com/ErlanBelekov/authapi/internal/infrastructure/memory"
	"github.com/ErlanBelekov/authapi/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/authapi/internal/log"
	"github.com/ErlanBelekov/authapi/internal/metrics"
	"github.com/ErlanBelekov/authapi/internal/password"
	"github.com/ErlanBelekov/authapi/internal/repository"
	"github.com/ErlanBelekov/authapi/internal/token"
	httptransport "github.com/ErlanBelekov/authapi/internal/transport/http"
	"github.com/ErlanBelekov/authapi/internal/transport/http/handler"
	"github.com/ErlanBelekov/authapi/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Users
	var (
		userRepo repository.UserRepository
		pinger   health.Pinger
	)
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory user store")
		mem := memory.NewUserRepository()
		userRepo, pinger = mem, mem
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			stop()
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			stop()
			log.Fatalf("migrate: %v", err)
		}
		userRepo, pinger = postgres.NewUserRepository(pool), pool
	}

	// Auth
	if cfg.TokenTTL == 0 {
		logger.Warn("TOKEN_TTL not set, issued tokens never expire")
	}
	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pinger, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, authHandler, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
