package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"pharmacy/m/internal/api"
	"pharmacy/m/internal/config"
	"pharmacy/m/internal/database"
	"pharmacy/m/internal/repository"
	"pharmacy/m/internal/schema"
	"pharmacy/m/internal/seed"
	"pharmacy/m/internal/service"
	"pharmacy/m/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewStdout(cfg.Env, cfg.Log.Level, cfg.Log.Format)
	log.Info("app: starting", "env", cfg.Env, "driver", cfg.DB.Driver)
	if cfg.DB.Defaulted {
		log.Warn("db: no connection configured, using local default", "connection", cfg.DB.Connection)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Critical("db: open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	prepare(ctx, db, cfg, log)

	auth, err := api.NewAuthenticator(cfg.Auth)
	if err != nil {
		log.Critical("auth: init failed", "err", err)
		os.Exit(1)
	}

	svc := service.New(repository.New(db), cfg.ExpiryWindowDays, log)
	handler := api.New(svc, auth, log, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if exitCode == 0 {
		log.Info("app: stopped")
		return
	}
	_ = db.Close()
	os.Exit(exitCode)
}

// prepare probes the store, creates missing tables and seeds empty ones.
// Every step is best effort: failures are reported and the server still
// starts, with individual requests failing until the store is reachable.
func prepare(ctx context.Context, db *sqlx.DB, cfg config.Config, log logger.Logger) {
	if err := database.Probe(ctx, db); err != nil {
		log.Critical("db: store unreachable, requests will fail until it is available", "err", err)
		return
	}

	if err := schema.Ensure(ctx, db); err != nil {
		log.Error("db: schema bootstrap failed", "err", err)
		return
	}

	if _, err := seed.LoadMedicines(ctx, db, filepath.Join(cfg.SeedDir, "medicines.csv"), log); err != nil {
		log.Error("seed: medicines failed", "err", err)
	}
	if _, err := seed.LoadSuppliers(ctx, db, filepath.Join(cfg.SeedDir, "suppliers.csv"), log); err != nil {
		log.Error("seed: suppliers failed", "err", err)
	}
}
