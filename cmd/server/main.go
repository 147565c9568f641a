// Command server runs the aufgabe task API.
//
// Configuration is layered: built-in defaults, an optional YAML file
// (-config flag, AUFGABE_CONFIG, ./config.yaml, /etc/aufgabe/config.yaml),
// then AUFGABE_* environment variable overrides:
//
//	AUFGABE_PORT         - Listen port (default: 8080)
//	AUFGABE_STORAGE      - Storage type: "memory" or "postgres" (default: "memory")
//	AUFGABE_DATABASE_DSN - PostgreSQL DSN (required for postgres storage)
//	AUFGABE_JWT_SECRET   - Token signing secret (required)
//	AUFGABE_CORS_ORIGIN  - Allowed browser origin (optional)
//	AUFGABE_METRICS      - Enable /metrics (default: true)
//	AUFGABE_LOG_LEVEL    - Log level: ERROR, WARN, INFO, DEBUG (default: INFO)
//	AUFGABE_DEBUG        - Debug categories: auth, storage, transport, config, all
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aufgabe-dev/aufgabe/pkg/account"
	"github.com/aufgabe-dev/aufgabe/pkg/auth"
	"github.com/aufgabe-dev/aufgabe/pkg/config"
	"github.com/aufgabe-dev/aufgabe/pkg/debug"
	"github.com/aufgabe-dev/aufgabe/pkg/storage"
	"github.com/aufgabe-dev/aufgabe/pkg/storage/memory"
	"github.com/aufgabe-dev/aufgabe/pkg/storage/postgres"
	"github.com/aufgabe-dev/aufgabe/pkg/task"
	transporthttp "github.com/aufgabe-dev/aufgabe/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	debug.Init("", "")
	logger := slog.Default()

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), auth.WithTTL(cfg.Auth.TokenTTL))
	accounts := account.NewService(store, hasher, tokens)
	tasks := task.NewService(store)

	adapterCfg := transporthttp.DefaultConfig()
	adapterCfg.CORSOrigin = cfg.CORS.AllowedOrigin
	adapterCfg.Metrics = cfg.Observability.Metrics.Enabled
	adapterCfg.MetricsPath = cfg.Observability.Metrics.Path

	adapter := transporthttp.NewAdapter(accounts, tasks, store, tokens, logger, adapterCfg)

	srv := transporthttp.NewServer(adapter,
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithLogger(logger),
	)

	return srv.ListenAndServe()
}

// openStore selects the configured storage backend. Postgres runs its
// embedded migrations on startup when migrate_on_start is set.
func openStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		logger.Info("storage ready", "type", "postgres")
		return store, nil
	default:
		logger.Info("storage ready", "type", "memory")
		return memory.New(), nil
	}
}
