package leaderboard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// TeamNameField is the column pinned to the front of every projection.
const TeamNameField = "team_name"

// Config is the static presentation configuration for one leaderboard.
// It is read-only once built.
type Config struct {
	// SortField is the column rows are ordered by. Empty keeps file order.
	SortField string

	// PrimaryScoreField receives the primary-score emphasis.
	PrimaryScoreField string

	// FieldNames overrides derived column titles.
	FieldNames map[string]string

	// Formatters maps a column to its presentation rule.
	Formatters map[string]Formatter

	// Collation pins the locale used to order non-numeric sort values.
	Collation language.Tag

	// Location is used for the "last updated" stamp.
	Location *time.Location
}

// DefaultConfig returns the configuration of the model-validation
// leaderboard: submissions ranked by macro F1 on the validation set.
func DefaultConfig() Config {
	return Config{
		SortField:         "validation_f1_score",
		PrimaryScoreField: "validation_f1_score",
		FieldNames: map[string]string{
			TeamNameField:         "Team",
			"validation_accuracy": "Validation Accuracy",
			"validation_f1_score": "Validation F1 Score",
			"timestamp":           "Submission Time",
		},
		Formatters: map[string]Formatter{
			"timestamp":           DateTime(DefaultDateTimeLayout, time.UTC),
			"validation_accuracy": Numeric6(),
			"validation_f1_score": Numeric6(),
		},
		Collation: language.English,
		Location:  time.UTC,
	}
}

// fileConfig is the YAML shape of a leaderboard configuration file.
//
//	sort_by: validation_f1_score
//	primary_score_field: validation_f1_score
//	collation: en
//	timezone: UTC
//	field_names:
//	  team_name: Team
//	formatters:
//	  timestamp: {kind: datetime, layout: "Jan 2, 2006 15:04"}
//	  validation_accuracy: {kind: numeric6}
type fileConfig struct {
	SortBy            string                   `yaml:"sort_by"`
	PrimaryScoreField string                   `yaml:"primary_score_field"`
	Collation         string                   `yaml:"collation"`
	Timezone          string                   `yaml:"timezone"`
	FieldNames        map[string]string        `yaml:"field_names"`
	Formatters        map[string]formatterSpec `yaml:"formatters"`
}

type formatterSpec struct {
	Kind     string `yaml:"kind"`
	Layout   string `yaml:"layout"`
	Timezone string `yaml:"timezone"`
}

// LoadConfigFile reads a YAML configuration. An empty path returns
// DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read leaderboard config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("leaderboard config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig builds a Config from YAML. Formatter specs are resolved
// here, once, so rendering never has to interpret configuration.
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("invalid config file: %w", err)
	}

	cfg := Config{
		SortField:         strings.TrimSpace(fc.SortBy),
		PrimaryScoreField: strings.TrimSpace(fc.PrimaryScoreField),
		FieldNames:        make(map[string]string, len(fc.FieldNames)),
		Formatters:        make(map[string]Formatter, len(fc.Formatters)),
		Collation:         language.English,
		Location:          time.UTC,
	}

	if fc.Collation != "" {
		tag, err := language.Parse(fc.Collation)
		if err != nil {
			return Config{}, fmt.Errorf("invalid collation %q: %w", fc.Collation, err)
		}
		cfg.Collation = tag
	}

	if fc.Timezone != "" {
		loc, err := time.LoadLocation(fc.Timezone)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timezone %q: %w", fc.Timezone, err)
		}
		cfg.Location = loc
	}

	for field, name := range fc.FieldNames {
		cfg.FieldNames[field] = name
	}

	for field, spec := range fc.Formatters {
		f, err := spec.build(cfg.Location)
		if err != nil {
			return Config{}, fmt.Errorf("formatter for %q: %w", field, err)
		}
		cfg.Formatters[field] = f
	}

	return cfg, nil
}

func (s formatterSpec) build(defaultLoc *time.Location) (Formatter, error) {
	kind, err := ParseFormatKind(s.Kind)
	if err != nil {
		return Formatter{}, err
	}
	switch kind {
	case FormatNumeric6:
		return Numeric6(), nil
	case FormatDateTime:
		loc := defaultLoc
		if s.Timezone != "" {
			if loc, err = time.LoadLocation(s.Timezone); err != nil {
				return Formatter{}, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
			}
		}
		return DateTime(s.Layout, loc), nil
	default:
		return Default(), nil
	}
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
