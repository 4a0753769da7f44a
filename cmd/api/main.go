package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/wallet-service/internal/api"
	"github.com/baharkarakas/wallet-service/internal/api/handlers"
	"github.com/baharkarakas/wallet-service/internal/auth"
	"github.com/baharkarakas/wallet-service/internal/config"
	"github.com/baharkarakas/wallet-service/internal/db"
	"github.com/baharkarakas/wallet-service/internal/events"
	"github.com/baharkarakas/wallet-service/internal/logger"
	"github.com/baharkarakas/wallet-service/internal/repository"
	"github.com/baharkarakas/wallet-service/internal/repository/memory"
	"github.com/baharkarakas/wallet-service/internal/repository/postgres"
	"github.com/baharkarakas/wallet-service/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		return err
	}

	var (
		store repository.Transactions
		ping  handlers.Pinger
	)
	switch cfg.Store {
	case config.StoreMemory:
		mem := memory.NewTransactions()
		store, ping = mem, mem
		log.Warn("using in-memory store; data is lost on exit")
	default:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if cfg.Migrate {
			if err := db.RunMigrations(pool); err != nil {
				return err
			}
			log.Info("migrations applied")
		}
		store, ping = postgres.NewRepositories(pool).Transactions, pool
	}

	var publisher services.EventPublisher
	if cfg.RedisAddr != "" {
		rdb, err := events.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		publisher = events.NewPublisher(rdb, cfg.EventsStream)
		log.Info("publishing events", "stream", cfg.EventsStream)
	}

	r := api.NewRouter(api.RouterDeps{
		Cfg:            cfg,
		UserTokens:     auth.NewUserTokens(cfg.JWTSecret, cfg.JWTUserTTL),
		InternalTokens: auth.NewInternalTokens(cfg.JWTInternalSecret),
		TxnSvc:         services.NewTransactionService(store, publisher),
		BalanceSvc:     services.NewBalanceService(store),
		DB:             ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("config",
		"env", cfg.Env,
		"store", cfg.Store,
		"rate_rps", cfg.RateRPS,
		"jwt_secret_len", len(cfg.JWTSecret),
		"jwt_internal_secret_len", len(cfg.JWTInternalSecret),
	)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
