package leaderboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/leaderboard/internal/tabular"
)

// Leaderboard is one loaded dataset. It is replaced wholesale on every
// load and never mutated.
type Leaderboard struct {
	// Columns is the header order of the source.
	Columns []string
	Records []tabular.Record
	// Source names where the data came from, for logs.
	Source   string
	LoadedAt time.Time
}

// New wraps parsed records. Columns are taken from the first record.
func New(records []tabular.Record) *Leaderboard {
	lb := &Leaderboard{Records: records, LoadedAt: time.Now()}
	if len(records) > 0 {
		lb.Columns = records[0].Keys()
	}
	return lb
}

// Len returns the number of records.
func (lb *Leaderboard) Len() int {
	if lb == nil {
		return 0
	}
	return len(lb.Records)
}

// Status describes which of the three presentations a Projection holds.
type Status string

const (
	StatusReady Status = "ready"
	StatusEmpty Status = "empty"
	StatusError Status = "error"
)

// Presentation strings.
const (
	EmptyMessage     = "No leaderboard data available"
	EmptyLastUpdated = "No data available"
	MissingCell      = "-"
	lastUpdatedStamp = "January 2, 2006 at 15:04:05"
)

// Column is one projected column header.
type Column struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Tags        []Tag  `json:"tags,omitempty"`
}

// Cell is one projected table cell.
type Cell struct {
	Column  string `json:"column"`
	Text    string `json:"text"`
	Tags    []Tag  `json:"tags,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

// Row is one ranked table row.
type Row struct {
	Rank      int       `json:"rank"`
	Medal     Medal     `json:"medal,omitempty"`
	RankClass RankClass `json:"rankClass,omitempty"`
	Cells     []Cell    `json:"cells"`
}

// Projection is everything a renderer needs to draw the table.
type Projection struct {
	Status      Status    `json:"status"`
	Message     string    `json:"message,omitempty"`
	Columns     []Column  `json:"columns,omitempty"`
	Rows        []Row     `json:"rows,omitempty"`
	LastUpdated string    `json:"lastUpdated,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Project builds the projection of lb at time now. A nil or empty
// leaderboard yields the empty presentation rather than a zero-row table.
func (p *Projector) Project(lb *Leaderboard, now time.Time) Projection {
	if lb.Len() == 0 {
		return Projection{
			Status:      StatusEmpty,
			Message:     EmptyMessage,
			LastUpdated: EmptyLastUpdated,
			GeneratedAt: now,
		}
	}

	records := p.Sort(lb.Records, p.cfg.SortField)
	names := p.DeriveColumns(records)

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{
			Name:        name,
			DisplayName: p.DisplayName(name),
			Tags:        p.Classify(name, records),
		}
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rank := i + 1
		medal, class := RankOf(rank)
		cells := make([]Cell, len(columns))
		for j, col := range columns {
			cells[j] = p.cell(col, rec)
		}
		rows[i] = Row{Rank: rank, Medal: medal, RankClass: class, Cells: cells}
	}

	return Projection{
		Status:      StatusReady,
		Columns:     columns,
		Rows:        rows,
		LastUpdated: "Last updated: " + now.In(p.cfg.location()).Format(lastUpdatedStamp),
		GeneratedAt: now,
	}
}

func (p *Projector) cell(col Column, rec tabular.Record) Cell {
	c := Cell{Column: col.Name, Tags: col.Tags}
	v, _ := rec.Get(col.Name)
	if v.IsNull() {
		c.Text = MissingCell
		c.Missing = true
		return c
	}
	c.Text = p.FormatCell(col.Name, v)
	return c
}

// Failed returns the error presentation for a failed load.
func Failed(err error, now time.Time) Projection {
	reason := "unknown error"
	if err != nil {
		reason = strings.TrimSpace(err.Error())
	}
	return Projection{
		Status:      StatusError,
		Message:     fmt.Sprintf("Error loading leaderboard: %s", reason),
		GeneratedAt: now,
	}
}

// Header returns the column display names in order.
func (pr Projection) Header() []string {
	out := make([]string, len(pr.Columns))
	for i, c := range pr.Columns {
		out[i] = c.DisplayName
	}
	return out
}

// Texts returns the cell texts of row i in column order.
func (pr Projection) Texts(i int) []string {
	cells := pr.Rows[i].Cells
	out := make([]string, len(cells))
	for j, c := range cells {
		out[j] = c.Text
	}
	return out
}
