// Package application wires configuration into a ready-to-use
// leaderboard service. Both the HTTP server and the CLI start here.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JonMunkholm/leaderboard/internal/config"
	"github.com/JonMunkholm/leaderboard/internal/core"
	"github.com/JonMunkholm/leaderboard/internal/leaderboard"
	"github.com/JonMunkholm/leaderboard/internal/source"
)

// App holds the long-lived dependencies of a running process.
type App struct {
	Config   *config.Config
	Board    leaderboard.Config
	Service  *core.Service
	Registry *prometheus.Registry

	pool *pgxpool.Pool
}

// New builds an App from cfg. The database pool is opened only when
// DATABASE_URL is set. Callers must Close the App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	board, err := leaderboard.LoadConfigFile(cfg.Leaderboard.ConfigPath)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Board: board, Registry: prometheus.NewRegistry()}

	if cfg.HasDatabase() {
		if app.pool, err = openPool(ctx, cfg.Database); err != nil {
			return nil, err
		}
	}

	src, err := source.New(cfg.Source, app.pool)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := core.NewMetrics(app.Registry)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	app.Service, err = core.NewService(src, leaderboard.NewProjector(board),
		core.WithLimiter(core.NewLoadLimiter(cfg.Leaderboard.MaxConcurrentLoads, cfg.Leaderboard.LoadWaitTime)),
		core.WithMetrics(metrics),
	)
	if err != nil {
		app.Close()
		return nil, err
	}

	slog.Info("leaderboard ready",
		"source", src.Name(),
		"sort_by", board.SortField,
		"config", cfg.Leaderboard.ConfigPath,
	)
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}

func openPool(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(db.MaxConns)
	poolConfig.MinConns = int32(db.MinConns)
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("connected to database", "name", databaseName(db.URL))
	return pool, nil
}

// databaseName returns the database named in a connection URL, for logs.
func databaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
