// Command leaderboard renders a leaderboard once and prints it.
//
//	leaderboard --source scores.csv render --format text
//	leaderboard --source https://example.com/board.csv columns
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/JonMunkholm/leaderboard/internal/application"
	"github.com/JonMunkholm/leaderboard/internal/config"
	"github.com/JonMunkholm/leaderboard/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "leaderboard",
		Usage:     "render a ranked leaderboard from comma-delimited text",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "file path, http(s) URL or db:<board>",
				EnvVars: []string{"LEADERBOARD_SOURCE"},
				Value:   "leaderboard.csv",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML presentation config",
				EnvVars: []string{"LEADERBOARD_CONFIG"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "fetch timeout",
				Value: 10 * time.Second,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Before: func(c *cli.Context) error {
			slog.SetDefault(logging.New(c.App.ErrWriter, c.String("log-level"), "text"))
			return nil
		},
		Commands: []*cli.Command{
			renderCommand(),
			columnsCommand(),
		},
	}
}

// loadApp builds the application from flags, falling back to the
// environment for everything the flags do not cover.
func loadApp(c *cli.Context) (*application.App, error) {
	overrides := map[string]string{
		"LEADERBOARD_SOURCE":         c.String("source"),
		"LEADERBOARD_CONFIG":         c.String("config"),
		"LEADERBOARD_SOURCE_TIMEOUT": c.Duration("timeout").String(),
		"LOG_LEVEL":                  c.String("log-level"),
		"RATE_LIMIT_ENABLED":         "false",
	}
	cfg, err := config.LoadFrom(func(name string) string {
		if v, ok := overrides[name]; ok && v != "" {
			return v
		}
		return os.Getenv(name)
	})
	if err != nil {
		return nil, err
	}
	return application.New(c.Context, cfg)
}
