// Binario del servicio de usuarios: expone el contrato RPC sobre Postgres.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/gymgate/internal/authsvc/handler"
	"github.com/dropDatabas3/gymgate/internal/authsvc/repository/pg"
	"github.com/dropDatabas3/gymgate/internal/authsvc/service"
	"github.com/dropDatabas3/gymgate/internal/config"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
	"github.com/dropDatabas3/gymgate/internal/store"
	migrations "github.com/dropDatabas3/gymgate/migrations/postgres"
)

func main() {
	var (
		flagConfig  = flag.String("config", "", "ruta a config.yaml (opcional, env pisa yaml)")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if *flagEnvFile != "" {
		if st, err := os.Stat(*flagEnvFile); err == nil && !st.IsDir() {
			_ = godotenv.Load(*flagEnvFile)
		}
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		logger.L().Fatal("config", logger.Err(err))
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "authsvc",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.NewPool(ctx, cfg.Storage.DSN, store.PGConfig{
		MaxConns:        cfg.Storage.Postgres.MaxConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal("pg pool", logger.Err(err))
	}
	defer pool.Close()

	if cfg.Flags.Migrate {
		if err := store.NewMigrator(migrations.FS, migrations.Dir).Run(ctx, pool); err != nil {
			log.Fatal("migrations", logger.Err(err))
		}
	}

	svc := service.NewUserService(service.Deps{Repo: pg.New(pool)})

	mux := http.NewServeMux()
	handler.New(svc).Register(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("authsvc up", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http", logger.Err(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", logger.Err(err))
	}
}
