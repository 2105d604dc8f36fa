package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tinymarket/market/internal/api"
	"github.com/tinymarket/market/internal/core/ports"
	"github.com/tinymarket/market/internal/infrastructure/db/redis"
	"github.com/tinymarket/market/internal/infrastructure/db/sqlite"
	"github.com/tinymarket/market/internal/pkg/config"
	"github.com/tinymarket/market/internal/session"
	"github.com/tinymarket/market/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "market",
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM. Every resource it opens is closed before
// it returns.
func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.DB.Path})
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DB.Path, err)
	}
	defer db.Close()

	if err := sqlite.InitSchema(ctx, db); err != nil {
		return fmt.Errorf("initialise schema: %w", err)
	}

	var (
		rdb     *goredis.Client
		limiter ports.LoginLimiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		limiter = redis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Lockout)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	}

	if cfg.Session.SecretKey == config.DefaultSecretKey && !cfg.IsDevelopment() {
		log.Warn().Msg("SECRET_KEY is not set; sessions are signed with the built-in key")
	}

	e, err := api.NewRouter(api.Deps{
		DB:       db,
		Redis:    rdb,
		Limiter:  limiter,
		Sessions: session.NewManager(cfg.Session.SecretKey, cfg.Session.TTL, cfg.Session.CookieSecure),
		Log:      log,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
