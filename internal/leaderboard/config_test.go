package leaderboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/leaderboard/internal/tabular"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "validation_f1_score", cfg.SortField)
	assert.Equal(t, "validation_f1_score", cfg.PrimaryScoreField)
	assert.Equal(t, "Submission Time", cfg.FieldNames["timestamp"])
	assert.Equal(t, FormatDateTime, cfg.Formatters["timestamp"].Kind())
	assert.Equal(t, FormatNumeric6, cfg.Formatters["validation_accuracy"].Kind())
	assert.Equal(t, language.English, cfg.Collation)
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
sort_by: accuracy
primary_score_field: f1
collation: de
timezone: UTC
field_names:
  team_name: Squad
  f1: F1
formatters:
  submitted: {kind: datetime, layout: "2006-01-02 15:04 MST", timezone: UTC}
  accuracy: {kind: numeric6}
  notes: {kind: default}
`)

	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "accuracy", cfg.SortField)
	assert.Equal(t, "f1", cfg.PrimaryScoreField)
	assert.Equal(t, "de", cfg.Collation.String())
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "Squad", cfg.FieldNames["team_name"])
	assert.Equal(t, FormatDateTime, cfg.Formatters["submitted"].Kind())
	assert.Equal(t, FormatNumeric6, cfg.Formatters["accuracy"].Kind())
	assert.Equal(t, FormatDefault, cfg.Formatters["notes"].Kind())

	p := NewProjector(cfg)
	assert.Equal(t, "2026-01-05 10:00 UTC", p.FormatCell("submitted", tabular.String("2026-01-05 10:00:00")))
	assert.Equal(t, "Squad", p.DisplayName("team_name"))
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "sort_by: [unterminated"},
		{"unknown formatter", "formatters:\n  x: {kind: sparkline}"},
		{"bad timezone", "timezone: Mars/Olympus"},
		{"bad formatter timezone", "formatters:\n  x: {kind: datetime, timezone: Nowhere/Land}"},
		{"bad collation", `collation: "!!"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_EmptyUsesNeutralDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.SortField)
	assert.Equal(t, language.English, cfg.Collation)
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().SortField, cfg.SortField)

	path := filepath.Join(t.TempDir(), "leaderboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort_by: score\n"), 0o644))
	cfg, err = LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "score", cfg.SortField)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFormatKind(t *testing.T) {
	for name, want := range map[string]FormatKind{
		"":          FormatDefault,
		"default":   FormatDefault,
		"Numeric6":  FormatNumeric6,
		"timestamp": FormatDateTime,
		" datetime": FormatDateTime,
	} {
		got, err := ParseFormatKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormatKind("custom")
	assert.Error(t, err)
	assert.Equal(t, "numeric6", FormatNumeric6.String())
}
