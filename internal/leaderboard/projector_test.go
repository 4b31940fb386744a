package leaderboard

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/leaderboard/internal/tabular"
)

func rec(id string, v tabular.Value) tabular.Record {
	return tabular.NewRecord([]string{"id", "s"}, []tabular.Value{tabular.String(id), v})
}

func ids(records []tabular.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		v, _ := r.Get("id")
		out[i] = v.Text()
	}
	return out
}

func TestSort_UnsetFieldOrEmptyIsIdentity(t *testing.T) {
	p := NewProjector(DefaultConfig())
	in := []tabular.Record{rec("a", tabular.Number(1)), rec("b", tabular.Number(2))}

	assert.Equal(t, []string{"a", "b"}, ids(p.Sort(in, "")))
	assert.Empty(t, p.Sort(nil, "s"))
	assert.Empty(t, p.Sort([]tabular.Record{}, "s"))
}

func TestSort_StableWithNullsLast(t *testing.T) {
	p := NewProjector(DefaultConfig())
	in := []tabular.Record{
		rec("r1", tabular.Number(5)),
		rec("r2", tabular.Null()),
		rec("r3", tabular.Number(5)),
		rec("r4", tabular.Null()),
	}

	got := p.Sort(in, "s")
	assert.Equal(t, []string{"r1", "r3", "r2", "r4"}, ids(got))
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids(in), "input must not be reordered")
}

func TestSort_AbsentFieldCountsAsNull(t *testing.T) {
	p := NewProjector(DefaultConfig())
	noField := tabular.NewRecord([]string{"id"}, []tabular.Value{tabular.String("x")})
	in := []tabular.Record{noField, rec("y", tabular.Number(1))}

	assert.Equal(t, []string{"y", "x"}, ids(p.Sort(in, "s")))
}

func TestSort_NumericDescending(t *testing.T) {
	p := NewProjector(DefaultConfig())
	in := []tabular.Record{
		rec("low", tabular.Number(0.5)),
		rec("high", tabular.Number(0.92341)),
		rec("neg", tabular.Number(-1)),
		rec("mid", tabular.Number(0.75)),
	}
	assert.Equal(t, []string{"high", "mid", "low", "neg"}, ids(p.Sort(in, "s")))
}

func TestSort_MixedNumericAndText(t *testing.T) {
	p := NewProjector(DefaultConfig())
	in := []tabular.Record{
		rec("b", tabular.String("b")),
		rec("a", tabular.String("a")),
		rec("10", tabular.Number(10)),
		rec("2", tabular.Number(2)),
	}

	// 10 > 2 numerically even though "10" < "2" as strings.
	assert.Equal(t, []string{"b", "a", "10", "2"}, ids(p.Sort(in, "s")))
}

func TestSort_TextUsesCollation(t *testing.T) {
	p := NewProjector(DefaultConfig())
	in := []tabular.Record{
		rec("apple", tabular.String("apple")),
		rec("Banana", tabular.String("Banana")),
		rec("cherry", tabular.String("cherry")),
	}

	// Raw byte order would put "Banana" last.
	assert.Equal(t, []string{"cherry", "Banana", "apple"}, ids(p.Sort(in, "s")))
}

func TestSort_CollationIsPinnedByConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collation = language.Swedish
	p := NewProjector(cfg)

	in := []tabular.Record{
		rec("z", tabular.String("z")),
		rec("ä", tabular.String("ä")),
	}

	// Swedish sorts ä after z; English would put it next to a.
	assert.Equal(t, []string{"ä", "z"}, ids(p.Sort(in, "s")))

	english := NewProjector(DefaultConfig())
	assert.Equal(t, []string{"z", "ä"}, ids(english.Sort(in, "s")))
}

func TestDeriveColumns(t *testing.T) {
	p := NewProjector(DefaultConfig())

	tests := []struct {
		name   string
		header string
		want   []string
	}{
		{"team_name moved first", "score,team_name,notes", []string{"team_name", "score", "notes"}},
		{"team_name already first", "team_name,a,b", []string{"team_name", "a", "b"}},
		{"no team_name", "c,a,b", []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.header + "\n" + strings.Repeat("x,", strings.Count(tt.header, ",")) + "x"
			assert.Equal(t, tt.want, p.DeriveColumns(tabular.Parse(text)))
		})
	}

	assert.Equal(t, []string{}, p.DeriveColumns(nil))
}

func TestDeriveColumns_UsesFirstRecordOnly(t *testing.T) {
	p := NewProjector(DefaultConfig())
	records := []tabular.Record{
		tabular.NewRecord([]string{"a", "b"}, nil),
		tabular.NewRecord([]string{"team_name", "a", "b", "c"}, nil),
	}
	assert.Equal(t, []string{"a", "b"}, p.DeriveColumns(records))
}

func TestFormatCell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formatters["boom"] = Custom(func(tabular.Value) (string, error) { panic("bad input") })
	cfg.Formatters["fails"] = Custom(func(tabular.Value) (string, error) { return "", errors.New("nope") })
	cfg.Formatters["upper"] = Custom(func(v tabular.Value) (string, error) { return strings.ToUpper(v.Text()), nil })
	p := NewProjector(cfg)

	tests := []struct {
		name  string
		field string
		value tabular.Value
		want  string
	}{
		{"numeric without formatter", "loss", tabular.Number(10), "10.000000"},
		{"numeric rounding", "loss", tabular.Number(0.9234567), "0.923457"},
		{"negative zero prints unsigned", "loss", tabular.Number(math.Copysign(0, -1)), "0.000000"},
		{"small negative keeps sign", "loss", tabular.Number(-0.0000001), "-0.000000"},
		{"huge numbers use exponent form", "loss", tabular.Number(1e21), "1e+21"},
		{"huge negative numbers use exponent form", "validation_f1_score", tabular.Number(-2.5e22), "-2.5e+22"},
		{"text without formatter", "notes", tabular.String("hello"), "hello"},
		{"empty text stays empty", "notes", tabular.String(""), ""},
		{"numeric6 formatter", "validation_f1_score", tabular.Number(0.92341), "0.923410"},
		{"numeric6 formatter passes text through", "validation_f1_score", tabular.String("n/a"), "n/a"},
		{"datetime formatter", "timestamp", tabular.String("2026-01-05 09:07:03"), "January 5, 2026 at 09:07:03"},
		{"datetime formatter falls back", "timestamp", tabular.String("not-a-date"), "not-a-date"},
		{"custom panic falls back", "boom", tabular.String("raw"), "raw"},
		{"custom error falls back", "fails", tabular.Number(3), "3"},
		{"custom result verbatim", "upper", tabular.String("abc"), "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.FormatCell(tt.field, tt.value))
		})
	}
}

func TestClassify(t *testing.T) {
	p := NewProjector(DefaultConfig())
	records := tabular.Parse("team_name,validation_accuracy,validation_f1_score,timestamp\n" +
		"alpha,0.9,0.8,2026-01-05 10:00:00")

	tests := []struct {
		field string
		want  []Tag
	}{
		{"validation_f1_score", []Tag{TagScore, TagPrimaryScore}},
		{"validation_accuracy", []Tag{TagScore}},
		{"team_name", []Tag{TagTeamName}},
		{"timestamp", nil},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.field, records))
		})
	}

	assert.Nil(t, p.Classify("validation_accuracy", nil))
	assert.Equal(t, []Tag{TagScore, TagPrimaryScore}, p.Classify("validation_f1_score", nil))
}

func TestClassify_PrimaryCanBeTeamName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrimaryScoreField = TeamNameField
	p := NewProjector(cfg)
	assert.Equal(t, []Tag{TagScore, TagPrimaryScore, TagTeamName}, p.Classify(TeamNameField, nil))
}

func TestRankOf(t *testing.T) {
	tests := []struct {
		pos       int
		wantMedal Medal
		wantClass RankClass
	}{
		{1, MedalGold, "rank-1"},
		{2, MedalSilver, "rank-2"},
		{3, MedalBronze, "rank-3"},
		{4, "", ""},
		{100, "", ""},
		{0, "", ""},
	}
	for _, tt := range tests {
		medal, class := RankOf(tt.pos)
		assert.Equal(t, tt.wantMedal, medal, "position %d", tt.pos)
		assert.Equal(t, tt.wantClass, class, "position %d", tt.pos)
	}
	assert.NotEqual(t, MedalGold, MedalSilver)
	assert.NotEqual(t, MedalSilver, MedalBronze)
}

func TestDisplayName(t *testing.T) {
	p := NewProjector(DefaultConfig())
	bare := NewProjector(Config{})

	assert.Equal(t, "Team", p.DisplayName("team_name"))
	assert.Equal(t, "Validation F1 Score", p.DisplayName("validation_f1_score"))
	assert.Equal(t, "Validation F1 Score", bare.DisplayName("validation_f1_score"))
	assert.Equal(t, "Team Name", bare.DisplayName("team_name"))
	assert.Equal(t, "RMSE Loss", bare.DisplayName("RMSE_loss"))
	assert.Equal(t, "Macro AUC", bare.DisplayName("macro_aUC"))
	assert.Equal(t, "Pass@k", bare.DisplayName("pass@k"))
	assert.Equal(t, "Foo  Bar", bare.DisplayName("foo__bar"))
	assert.Equal(t, "Épreuve", bare.DisplayName("épreuve"))
	assert.Equal(t, "SSeta", bare.DisplayName("ßeta"))
	assert.Equal(t, "", bare.DisplayName(""))
}

func TestNewProjector_CopiesConfigMaps(t *testing.T) {
	cfg := DefaultConfig()
	p := NewProjector(cfg)
	cfg.FieldNames["team_name"] = "Changed"
	delete(cfg.Formatters, "timestamp")

	assert.Equal(t, "Team", p.DisplayName("team_name"))
	assert.Equal(t, "January 5, 2026 at 10:00:00", p.FormatCell("timestamp", tabular.String("2026-01-05 10:00:00")))
	require.Contains(t, p.Config().Formatters, "timestamp")
}
