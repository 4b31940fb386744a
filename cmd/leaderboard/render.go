package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"github.com/JonMunkholm/leaderboard/internal/core"
	"github.com/JonMunkholm/leaderboard/internal/leaderboard"
	"github.com/JonMunkholm/leaderboard/internal/web/templates"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "load the leaderboard and print it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "text, json or html",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "page title for html output",
				Value: "Leaderboard",
			},
		},
		Action: func(c *cli.Context) error {
			format := strings.ToLower(c.String("format"))
			if format != "text" && format != "json" && format != "html" {
				return fmt.Errorf("unknown format %q (want text, json or html)", format)
			}

			app, err := loadApp(c)
			if err != nil {
				return err
			}
			defer app.Close()

			pr, loadErr := app.Service.RenderDetailed(c.Context, time.Now())

			out := c.App.Writer
			switch format {
			case "json":
				err = writeJSON(out, pr)
			case "html":
				err = templates.Page(c.String("title"), pr).Render(c.Context, out)
			default:
				err = writeText(out, pr)
			}
			if err != nil {
				return err
			}

			if loadErr != nil {
				return cli.Exit(core.FormatUserError(loadErr), 2)
			}
			return nil
		},
	}
}

func columnsCommand() *cli.Command {
	return &cli.Command{
		Name:  "columns",
		Usage: "list the columns, their display names and formatters",
		Action: func(c *cli.Context) error {
			app, err := loadApp(c)
			if err != nil {
				return err
			}
			defer app.Close()

			lb, err := app.Service.Load(c.Context)
			if err != nil {
				return cli.Exit(core.FormatUserError(err), 2)
			}

			p := app.Service.Projector()
			cfg := p.Config()
			records := p.Sort(lb.Records, cfg.SortField)

			var rows [][]string
			for _, name := range p.DeriveColumns(records) {
				kind := leaderboard.FormatDefault
				if f, ok := cfg.Formatters[name]; ok {
					kind = f.Kind()
				}
				rows = append(rows, []string{
					name,
					p.DisplayName(name),
					leaderboard.JoinTags(p.Classify(name, records)),
					kind.String(),
				})
			}

			t := newTable().Headers("Field", "Display Name", "Tags", "Formatter").Rows(rows...)
			_, err = fmt.Fprintln(c.App.Writer, t.String())
			return err
		},
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	podiumStyle = cellStyle.Bold(true)
)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// writeText prints the projection as a bordered table followed by the
// last-updated line. Empty and error projections print their message.
func writeText(w io.Writer, pr leaderboard.Projection) error {
	if pr.Status != leaderboard.StatusReady {
		lines := []string{pr.Message}
		if pr.LastUpdated != "" {
			lines = append(lines, pr.LastUpdated)
		}
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	}

	rows := make([][]string, len(pr.Rows))
	for i, row := range pr.Rows {
		rank := strconv.Itoa(row.Rank)
		if row.Medal != "" {
			rank = string(row.Medal) + " " + rank
		}
		rows[i] = append([]string{rank}, pr.Texts(i)...)
	}

	t := newTable().
		Headers(append([]string{"Rank"}, pr.Header()...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < 3:
				return podiumStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", t.String(), pr.LastUpdated)
	return err
}

func writeJSON(w io.Writer, pr leaderboard.Projection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pr)
}
