// Package app wires the record store and the services built on it.
// Both the HTTP server and the recordctl CLI start from Open.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/searchtable/internal/config"
	"github.com/JonMunkholm/searchtable/internal/core"
	"github.com/JonMunkholm/searchtable/internal/integration"
	"github.com/JonMunkholm/searchtable/internal/store"
	"github.com/JonMunkholm/searchtable/internal/web"
)

// App holds the loaded record set and its services.
type App struct {
	Store        *store.Memory
	Catalog      *core.Catalog
	Engine       *core.Engine
	Exporter     *core.Exporter
	Integrations *integration.Service
}

// Open loads records and builds the services over them.
// Records come from PostgreSQL when a database URL is configured and from
// the deterministic generator otherwise.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	var records []*core.Record
	if cfg.Database.UsesDatabase() {
		loaded, err := loadFromDatabase(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		records = loaded
	} else {
		records = store.Seed(cfg.Store.SeedCount, uint64(cfg.Store.Seed))
		slog.Info("records generated", "count", len(records), "seed", cfg.Store.Seed)
	}

	return New(records), nil
}

// New builds the services over an in-memory copy of records.
func New(records []*core.Record) *App {
	mem := store.NewMemory(records)
	catalog := core.DefaultCatalog()
	return &App{
		Store:        mem,
		Catalog:      catalog,
		Engine:       core.NewEngine(catalog, mem),
		Exporter:     core.NewExporter(catalog),
		Integrations: integration.NewService(mem),
	}
}

// WebDeps returns the dependencies of the HTTP server.
func (a *App) WebDeps() web.Deps {
	return web.Deps{
		Store:        a.Store,
		Engine:       a.Engine,
		Exporter:     a.Exporter,
		Integrations: a.Integrations,
	}
}

// loadFromDatabase reads the records table once. The pool is closed
// afterwards: queries run against the in-memory snapshot.
func loadFromDatabase(ctx context.Context, cfg *config.DatabaseConfig) ([]*core.Record, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	records, err := store.LoadPostgres(ctx, pool, cfg.RecordsTable)
	if err != nil {
		return nil, err
	}

	slog.Info("records loaded from database",
		"database", databaseName(cfg.URL),
		"table", cfg.RecordsTable,
		"count", len(records),
	)
	return records, nil
}

// databaseName extracts the database name from a connection URL for logging.
func databaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
