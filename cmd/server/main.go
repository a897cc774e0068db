package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/atithi-inn/internal/config"
	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/server"
	"github.com/hongminglow/atithi-inn/internal/storage"
	"github.com/hongminglow/atithi-inn/internal/storage/memory"
	"github.com/hongminglow/atithi-inn/internal/storage/postgres"
	"github.com/hongminglow/atithi-inn/internal/storage/rediscache"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		var missing *config.MissingError
		if errors.As(err, &missing) {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", missing)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(cfg.LogLevel)}))
	slog.SetDefault(slogger)
	log := logging.NewSlogLogger(slogger).With("service", "atithi-inn")

	ctx := context.Background()
	if envErr != nil {
		log.Info(ctx, "no .env file found; relying on existing environment")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "init store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	deps := server.Deps{Store: store, Log: log}
	if cfg.RedisAddr != "" {
		rdb, err := rediscache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn(ctx, "redis unavailable; sessions served from the store only", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer rdb.Close()
			deps.Tokens = rediscache.NewTokenStore(store, rdb, log.With("component", "session-cache"))
		}
	}

	srv := server.New(cfg, deps)

	go func() {
		log.Info(ctx, "AtithiInn backend listening", "addr", cfg.HTTPAddress(), "env", cfg.Environment, "store", cfg.StoreDriver)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error(ctx, "graceful shutdown error", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return memory.New(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return postgres.Open(connectCtx, cfg.DatabaseURL)
}
