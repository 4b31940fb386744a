package tabular

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\r\n\t"} {
		records := Parse(input)
		require.NotNil(t, records)
		assert.Empty(t, records, "input %q", input)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	assert.Empty(t, Parse("team_name,score\n"))
}

func TestParse_Basic(t *testing.T) {
	text := "team_name, validation_accuracy ,validation_f1_score,timestamp\r\n" +
		"alpha/run1,0.950000,0.923410,2026-01-05 10:00:00\n" +
		" beta/run2 , 0.91 , 0.88 , 2026-01-06 11:30:00 \n"

	records := Parse(text)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, []string{"team_name", "validation_accuracy", "validation_f1_score", "timestamp"}, first.Keys())

	team, ok := first.Get("team_name")
	require.True(t, ok)
	assert.Equal(t, KindString, team.Kind())
	assert.Equal(t, "alpha/run1", team.Text())

	f1, _ := first.Get("validation_f1_score")
	got, isNum := f1.Float()
	require.True(t, isNum)
	assert.InDelta(t, 0.923410, got, 1e-12)

	ts, _ := records[1].Get("timestamp")
	assert.Equal(t, "2026-01-06 11:30:00", ts.Text())

	beta, _ := records[1].Get("team_name")
	assert.Equal(t, "beta/run2", beta.Text())
}

func TestParse_ShortRowPadsWithEmptyStrings(t *testing.T) {
	records := Parse("a,b,c,d\n1,x")
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 4, r.Len())
	for _, key := range []string{"c", "d"} {
		v, ok := r.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, KindString, v.Kind(), key)
		assert.Equal(t, "", v.Text(), key)
	}
	a, _ := r.Get("a")
	assert.True(t, a.IsNumber())
}

func TestParse_ExtraTokensIgnored(t *testing.T) {
	records := Parse("a,b\n1,2,3,4")
	require.Len(t, records, 1)
	assert.Equal(t, []string{"a", "b"}, records[0].Keys())
}

func TestParse_NoQuoteHandling(t *testing.T) {
	records := Parse("name,score\n\"Smith, J\",5")
	require.Len(t, records, 1)

	name, _ := records[0].Get("name")
	score, _ := records[0].Get("score")
	assert.Equal(t, `"Smith`, name.Text())
	assert.Equal(t, `J"`, score.Text())
}

func TestParse_EveryRecordHasHeaderKeys(t *testing.T) {
	text := "team_name,s1,s2\nx\ny,1\nz,1,2\n,,"
	for i, r := range Parse(text) {
		assert.Equal(t, []string{"team_name", "s1", "s2"}, r.Keys(), "record %d", i)
	}
}

func TestParse_BlankInteriorLineIsARecord(t *testing.T) {
	records := Parse("a,b\n1,2\n\n3,4")
	require.Len(t, records, 3)
	v, _ := records[1].Get("a")
	assert.Equal(t, String(""), v)
}

func TestHeader(t *testing.T) {
	assert.Nil(t, Header("  "))
	assert.Equal(t, []string{"a", "b"}, Header(" a , b \n1,2"))
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		token    string
		wantKind Kind
		wantNum  float64
	}{
		{"0.923410", KindNumber, 0.923410},
		{"10", KindNumber, 10},
		{"-3.5", KindNumber, -3.5},
		{"+2", KindNumber, 2},
		{".5", KindNumber, 0.5},
		{"5.", KindNumber, 5},
		{"1e3", KindNumber, 1000},
		{"1.5E-2", KindNumber, 0.015},
		{"0x1F", KindNumber, 31},
		{"0b101", KindNumber, 5},
		{"0o17", KindNumber, 15},
		{"007", KindNumber, 7},
		{"", KindString, 0},
		{"abc", KindString, 0},
		{"1,000", KindString, 0},
		{"1_000", KindString, 0},
		{"Infinity", KindString, 0},
		{"inf", KindString, 0},
		{"NaN", KindString, 0},
		{"1e400", KindString, 0},
		{"0x1p-2", KindString, 0},
		{"-0x10", KindString, 0},
		{"1e", KindString, 0},
		{".", KindString, 0},
		{"2026-01-05", KindString, 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			v := Coerce(tt.token)
			assert.Equal(t, tt.wantKind, v.Kind())
			if tt.wantKind == KindNumber {
				f, _ := v.Float()
				assert.InDelta(t, tt.wantNum, f, 1e-12)
			} else {
				assert.Equal(t, tt.token, v.Text())
			}
		})
	}
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(10), "10"},
		{Number(0.92341), "0.92341"},
		{Number(-2.5), "-2.5"},
		{Number(0), "0"},
		{Number(1e21), "1e+21"},
		{Number(1.5e-7), "1.5e-7"},
		{String("b"), "b"},
		{Null(), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Text())
	}
}

func TestRecord_DuplicateKeys(t *testing.T) {
	r := NewRecord([]string{"a", "b", "a"}, []Value{Number(1), Number(2), Number(3)})
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	v, _ := r.Get("a")
	assert.Equal(t, Number(3), v)
}

func TestRecord_KeysIsACopy(t *testing.T) {
	r := NewRecord([]string{"a", "b"}, []Value{Number(1), Number(2)})
	keys := r.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, r.Keys())
}

func TestRecord_MissingValuesAreNull(t *testing.T) {
	r := NewRecord([]string{"a", "b"}, []Value{Number(1)})
	v, ok := r.Get("b")
	require.True(t, ok)
	assert.True(t, v.IsNull())

	_, ok = r.Get("c")
	assert.False(t, ok)
}

func TestParseReader(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("team_name,score\nal\xffpha,3\n")...)
	records, err := ParseReader(strings.NewReader(string(payload)))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"team_name", "score"}, records[0].Keys())

	name, _ := records[0].Get("team_name")
	assert.Equal(t, "al\uFFFDpha", name.Text())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestParseReader_ReadError(t *testing.T) {
	_, err := ParseReader(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}
