// Package leaderboard turns parsed records into a render-ready
// projection: ordered columns, ranked rows and formatted cells.
//
// Every operation is a pure function of its inputs and the Projector's
// read-only Config. The dataset itself is passed in on each call; nothing
// here keeps a "current" leaderboard.
package leaderboard

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/leaderboard/internal/tabular"
)

// Tag is a style tag attached to a column and its cells.
type Tag string

const (
	TagScore        Tag = "score"
	TagPrimaryScore Tag = "primary-score"
	TagTeamName     Tag = "team-name"
)

// Medal is the glyph shown next to a podium rank. Empty means none.
type Medal string

const (
	MedalGold   Medal = "🥇"
	MedalSilver Medal = "🥈"
	MedalBronze Medal = "🥉"
)

// RankClass is the positional style class of a podium rank. Empty means
// none.
type RankClass string

// Projector applies a Config to leaderboard data.
type Projector struct {
	cfg Config
}

// NewProjector copies cfg and returns a Projector for it.
func NewProjector(cfg Config) *Projector {
	names := make(map[string]string, len(cfg.FieldNames))
	for k, v := range cfg.FieldNames {
		names[k] = v
	}
	formatters := make(map[string]Formatter, len(cfg.Formatters))
	for k, v := range cfg.Formatters {
		formatters[k] = v
	}
	cfg.FieldNames = names
	cfg.Formatters = formatters

	return &Projector{cfg: cfg}
}

// Config returns a copy of the projector's configuration.
func (p *Projector) Config() Config {
	return p.cfg
}

// Sort returns records ordered descending by sortField. The sort is
// stable. Null or absent values go last. Two numbers compare
// numerically; any other pair compares the string forms with the
// configured collation. An empty sortField or empty input is returned
// as is.
func (p *Projector) Sort(records []tabular.Record, sortField string) []tabular.Record {
	if sortField == "" || len(records) == 0 {
		return records
	}

	// A Collator is not safe for concurrent use.
	coll := collate.New(p.cfg.Collation)

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b tabular.Record) int {
		av, _ := a.Get(sortField)
		bv, _ := b.Get(sortField)
		return compareDescending(coll, av, bv)
	})
	return sorted
}

func compareDescending(coll *collate.Collator, a, b tabular.Value) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return 1
	case b.IsNull():
		return -1
	}

	an, aNum := a.Float()
	bn, bNum := b.Float()
	if aNum && bNum {
		return cmp.Compare(bn, an)
	}
	return coll.CompareString(b.Text(), a.Text())
}

// DeriveColumns returns the display column order: team_name first when
// the first record has it, then the first record's remaining columns in
// header order.
func (p *Projector) DeriveColumns(records []tabular.Record) []string {
	if len(records) == 0 {
		return []string{}
	}

	first := records[0]
	columns := make([]string, 0, first.Len())
	if first.Has(TeamNameField) {
		columns = append(columns, TeamNameField)
	}
	for _, key := range first.Keys() {
		if key != TeamNameField {
			columns = append(columns, key)
		}
	}
	return columns
}

// FormatCell renders a non-null value for display. A configured
// formatter wins; its errors and panics fall back to the raw value.
// Without one, numbers get six decimals and text is returned unchanged.
func (p *Projector) FormatCell(field string, v tabular.Value) string {
	if f, ok := p.cfg.Formatters[field]; ok {
		return safeFormat(f, v)
	}
	if n, ok := v.Float(); ok {
		return fixed6(n)
	}
	return v.Text()
}

func safeFormat(f Formatter, v tabular.Value) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = v.Text()
		}
	}()
	s, err := f.Format(v)
	if err != nil {
		return v.Text()
	}
	return s
}

// Classify returns the style tags for a column. The primary score field
// gets score and primary-score; any other column whose first-record value
// is numeric gets score; team_name additionally gets team-name.
func (p *Projector) Classify(field string, records []tabular.Record) []Tag {
	var tags []Tag
	if p.cfg.PrimaryScoreField != "" && field == p.cfg.PrimaryScoreField {
		tags = append(tags, TagScore, TagPrimaryScore)
	} else if len(records) > 0 {
		if v, ok := records[0].Get(field); ok && v.IsNumber() {
			tags = append(tags, TagScore)
		}
	}
	if field == TeamNameField {
		tags = append(tags, TagTeamName)
	}
	return tags
}

// RankOf returns the medal and rank class for a 1-based position.
func RankOf(position int) (Medal, RankClass) {
	switch position {
	case 1:
		return MedalGold, "rank-1"
	case 2:
		return MedalSilver, "rank-2"
	case 3:
		return MedalBronze, "rank-3"
	default:
		return "", ""
	}
}

// DisplayName returns the configured title for field, or one derived by
// splitting on underscores and upper-casing the first character of each
// segment.
func (p *Projector) DisplayName(field string) string {
	if name := p.cfg.FieldNames[field]; name != "" {
		return name
	}

	upper := cases.Upper(language.Und)
	segments := strings.Split(field, "_")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		first, rest := splitFirstRune(seg)
		segments[i] = upper.String(first) + rest
	}
	return strings.Join(segments, " ")
}

func splitFirstRune(s string) (string, string) {
	for i := range s {
		if i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// JoinTags renders tags as a space-separated class attribute value.
func JoinTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}
