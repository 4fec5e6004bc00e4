// Package main запускает HTTP-сервис каталога пользователей
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-directory-service/internal/config"
	httpapi "user-directory-service/internal/http"
	"user-directory-service/internal/logger"
	"user-directory-service/internal/repository"
	"user-directory-service/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "user-directory-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Контекст отменяется по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, cleanup, err := newUserService(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer cleanup()

	handler := httpapi.NewHandler(users, log, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}

// newUserService собирает сервис поверх выбранного хранилища.
func newUserService(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (*service.UserService, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		repo, err := repository.NewMemoryUserRepo()
		if err != nil {
			return nil, nil, err
		}
		log.Warn("using in-memory storage, data is lost on restart")
		return service.NewUserService(repo, repo), func() {}, nil

	case config.DriverPostgres:
		db, err := repository.NewPostgres(ctx, cfg.DSN, cfg.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("init postgres: %w", err)
		}
		if cfg.InitSchema {
			if err := db.EnsureSchema(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		log.Info("connected to postgres", zap.Int32("max_conns", cfg.MaxConns))

		userRepo := repository.NewUserRepo(db)
		txManager := repository.NewTransactionManager(db)
		return service.NewUserService(userRepo, txManager), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
