package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"care-companion/internal/adapters/auth/jwtauth"
	valkeycache "care-companion/internal/adapters/cache/valkey"
	pg "care-companion/internal/adapters/storage/postgres"
	"care-companion/internal/platform/config"
	"care-companion/internal/platform/logger"
	"care-companion/internal/router"
)

// @title Care Companion API
// @version 1.0
// @description Cuentas family/elderly, perfiles de salud y agenda diaria de medicación.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := jwtauth.NewManager(jwtauth.Config{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		return err
	}

	opts := router.Options{
		Logger:         log,
		Tokens:         tokens,
		BcryptCost:     cfg.BcryptCost,
		FamilyCacheTTL: cfg.FamilyCacheTTL,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN not set)", nil)
	}

	if cfg.ValkeyAddr != "" {
		vc, err := valkeycache.Open(ctx, cfg.ValkeyAddr, cfg.AppName)
		if err != nil {
			return err
		}
		defer vc.Close()

		opts.Cache = vc
		log.Info("cache: valkey", map[string]any{"addr": cfg.ValkeyAddr})
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
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

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
