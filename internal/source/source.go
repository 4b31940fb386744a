// Package source retrieves the raw leaderboard payload.
//
// A Source only moves bytes; parsing and projection happen elsewhere.
// Every retrieval failure is reported as a *LoadError so callers can
// present a single, human-readable reason.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/leaderboard/internal/config"
)

// ErrLoadFailure matches every *LoadError via errors.Is.
var ErrLoadFailure = errors.New("leaderboard load failure")

// Source fetches the raw delimited text of a leaderboard.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// LoadError describes a failed retrieval.
type LoadError struct {
	Source string
	// Status is the HTTP status for HTTP sources, zero otherwise.
	Status int
	// Reason is the short human-readable cause, e.g. "Not Found".
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Reason != "" {
		return "Failed to load leaderboard data: " + e.Reason
	}
	if e.Err != nil {
		return "Failed to load leaderboard data: " + e.Err.Error()
	}
	return "Failed to load leaderboard data"
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports ErrLoadFailure for every LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoadFailure }

func loadError(src string, err error) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	return &LoadError{Source: src, Err: err}
}

// New picks a Source for cfg.URI:
//
//	http://, https://  HTTPSource
//	db:, db:<board>    PostgresSource on pool
//	anything else      FileSource (a "file://" prefix is stripped)
//
// pool may be nil when the URI does not name a database.
func New(cfg config.SourceConfig, pool *pgxpool.Pool) (Source, error) {
	uri := strings.TrimSpace(cfg.URI)
	lower := strings.ToLower(uri)

	switch {
	case uri == "":
		return nil, errors.New("source: empty URI")

	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return &HTTPSource{
			URL:      uri,
			Client:   &http.Client{Timeout: cfg.Timeout},
			MaxBytes: cfg.MaxBytes,
		}, nil

	case strings.HasPrefix(lower, "db:"):
		if pool == nil {
			return nil, fmt.Errorf("source: %q needs a database connection (set DATABASE_URL)", uri)
		}
		return &PostgresSource{
			Pool:     pool,
			Query:    cfg.Query,
			Board:    uri[len("db:"):],
			MaxBytes: cfg.MaxBytes,
		}, nil

	default:
		return &FileSource{Path: strings.TrimPrefix(uri, "file://"), MaxBytes: cfg.MaxBytes}, nil
	}
}
