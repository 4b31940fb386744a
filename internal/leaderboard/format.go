package leaderboard

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/leaderboard/internal/tabular"
)

// FormatKind selects how a Formatter renders a value.
type FormatKind int

const (
	// FormatDefault renders numbers with six decimals and text unchanged.
	FormatDefault FormatKind = iota
	// FormatNumeric6 renders numbers with six decimals and leaves
	// anything else untouched.
	FormatNumeric6
	// FormatDateTime parses a timestamp string and re-renders it.
	FormatDateTime
	// FormatCustom delegates to a caller-supplied function.
	FormatCustom
)

var formatKindNames = map[FormatKind]string{
	FormatDefault:  "default",
	FormatNumeric6: "numeric6",
	FormatDateTime: "datetime",
	FormatCustom:   "custom",
}

func (k FormatKind) String() string {
	if name, ok := formatKindNames[k]; ok {
		return name
	}
	return "FormatKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseFormatKind maps a configuration name to a FormatKind. Custom
// formatters cannot be named in configuration files.
func ParseFormatKind(name string) (FormatKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return FormatDefault, nil
	case "numeric6", "numeric", "fixed6":
		return FormatNumeric6, nil
	case "datetime", "timestamp":
		return FormatDateTime, nil
	default:
		return FormatDefault, fmt.Errorf("unknown formatter kind %q", name)
	}
}

// DefaultDateTimeLayout renders timestamps as "January 2, 2006 at 15:04:05".
const DefaultDateTimeLayout = "January 2, 2006 at 15:04:05"

// dateTimeInputLayouts are tried in order when parsing timestamp values.
var dateTimeInputLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ErrUnparsableTime is returned by the datetime formatter when no input
// layout matches.
var ErrUnparsableTime = errors.New("unparsable timestamp")

// Formatter is a per-field presentation rule. The zero Formatter is the
// default rule.
type Formatter struct {
	kind     FormatKind
	layout   string
	location *time.Location
	custom   func(tabular.Value) (string, error)
}

// Default returns the default formatter.
func Default() Formatter { return Formatter{kind: FormatDefault} }

// Numeric6 returns a formatter that renders numbers with six decimals.
func Numeric6() Formatter { return Formatter{kind: FormatNumeric6} }

// DateTime returns a timestamp formatter. An empty layout selects
// DefaultDateTimeLayout and a nil location selects UTC. Timestamps
// without an offset are interpreted in loc.
func DateTime(layout string, loc *time.Location) Formatter {
	if layout == "" {
		layout = DefaultDateTimeLayout
	}
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{kind: FormatDateTime, layout: layout, location: loc}
}

// Custom wraps fn. A nil fn behaves like Default.
func Custom(fn func(tabular.Value) (string, error)) Formatter {
	if fn == nil {
		return Default()
	}
	return Formatter{kind: FormatCustom, custom: fn}
}

// Kind returns the formatter variant.
func (f Formatter) Kind() FormatKind { return f.kind }

// Format renders v. Errors are reported to the caller; the projector
// turns them into the raw value.
func (f Formatter) Format(v tabular.Value) (string, error) {
	switch f.kind {
	case FormatNumeric6:
		if n, ok := v.Float(); ok {
			return fixed6(n), nil
		}
		return v.Text(), nil
	case FormatDateTime:
		return f.formatTime(v)
	case FormatCustom:
		return f.custom(v)
	default:
		if n, ok := v.Float(); ok {
			return fixed6(n), nil
		}
		return v.Text(), nil
	}
}

func (f Formatter) formatTime(v tabular.Value) (string, error) {
	raw := strings.TrimSpace(v.Text())
	if raw == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnparsableTime)
	}
	for _, layout := range dateTimeInputLayouts {
		t, err := time.ParseInLocation(layout, raw, f.location)
		if err == nil {
			return t.In(f.location).Format(f.layout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnparsableTime, raw)
}

// fixed6 renders n with six decimals. Negative zero prints unsigned and
// magnitudes of 1e21 and above switch to exponent form.
func fixed6(n float64) string {
	if n == 0 {
		n = 0
	}
	if math.Abs(n) >= 1e21 {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', 6, 64)
}
