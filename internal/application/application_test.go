package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/leaderboard/internal/config"
	"github.com/JonMunkholm/leaderboard/internal/leaderboard"
)

func baseConfig(t *testing.T, uri string) *config.Config {
	t.Helper()
	return &config.Config{
		Source:      config.SourceConfig{URI: uri, Timeout: time.Second, MaxBytes: 1 << 20},
		Leaderboard: config.LeaderboardConfig{MaxConcurrentLoads: 2, LoadWaitTime: time.Second},
	}
}

func TestNew_FileSource(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "board.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("team_name,score\na,1\nb,3\n"), 0o644))
	yamlPath := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("sort_by: score\nprimary_score_field: score\n"), 0o644))

	cfg := baseConfig(t, csvPath)
	cfg.Leaderboard.ConfigPath = yamlPath

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "score", app.Board.SortField)
	assert.Equal(t, 2, app.Service.Limiter().MaxConcurrent())

	pr := app.Service.Render(context.Background(), time.Now())
	require.Equal(t, leaderboard.StatusReady, pr.Status)
	assert.Equal(t, "b", pr.Texts(0)[0])

	families, err := app.Registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["leaderboard_loads_total"])
	assert.True(t, names["go_goroutines"])
}

func TestNew_BadPresentationConfig(t *testing.T) {
	cfg := baseConfig(t, "board.csv")
	cfg.Leaderboard.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_DatabaseSourceWithoutPool(t *testing.T) {
	_, err := New(context.Background(), baseConfig(t, "db:validation"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "scores", databaseName("postgres://u:p@localhost:5432/scores?sslmode=disable"))
	assert.Equal(t, "", databaseName("host=localhost dbname=scores"))
}
