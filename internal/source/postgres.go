package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DefaultPayloadQuery selects the newest published payload, optionally
// restricted to one board. $1 is the board name ("" for any).
const DefaultPayloadQuery = `
SELECT payload
FROM leaderboard_payloads
WHERE ($1 = '' OR board = $1)
ORDER BY published_at DESC
LIMIT 1`

// Querier is the subset of *pgxpool.Pool used by PostgresSource.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads the newest raw CSV payload from a table that an
// external scoring job publishes to. It never writes.
type PostgresSource struct {
	Pool  Querier
	Query string
	Board string
	// MaxBytes caps the payload size (DefaultMaxBytes when zero).
	MaxBytes int64
}

// Name implements Source.
func (s *PostgresSource) Name() string {
	if s.Board == "" {
		return "db:"
	}
	return "db:" + s.Board
}

// Fetch implements Source.
func (s *PostgresSource) Fetch(ctx context.Context) ([]byte, error) {
	query := s.Query
	if query == "" {
		query = DefaultPayloadQuery
	}

	var payload string
	err := s.Pool.QueryRow(ctx, query, s.Board).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &LoadError{Source: s.Name(), Reason: "no published payload", Err: err}
	}
	if err != nil {
		return nil, loadError(s.Name(), fmt.Errorf("query payload: %w", err))
	}

	max := s.MaxBytes
	if max <= 0 {
		max = DefaultMaxBytes
	}
	if int64(len(payload)) > max {
		return nil, loadError(s.Name(), fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, max))
	}
	return []byte(payload), nil
}
