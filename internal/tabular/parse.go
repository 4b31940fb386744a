// Package tabular parses the flat comma-delimited leaderboard format into
// typed, ordered records.
//
// The format is deliberately simple: the first line is the header, every
// other line is one record, and fields are split on every comma. Quoted
// fields are not supported; a literal comma always starts a new field.
// Parsing never fails. Short rows are padded with empty strings and
// tokens that look like finite numbers become numbers.
package tabular

import (
	"regexp"
	"strings"
)

// Delimiter separates fields on a line.
const Delimiter = ","

// lineBreak matches both bare and carriage-return-prefixed line endings.
var lineBreak = regexp.MustCompile(`\r?\n`)

// Parse converts raw text into records, one per non-header line.
// It returns an empty slice when the trimmed text has no content.
func Parse(text string) []Record {
	lines := splitLines(text)
	if len(lines) == 0 {
		return []Record{}
	}

	header := splitFields(lines[0])
	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		tokens := splitFields(line)
		values := make([]Value, len(header))
		for i := range header {
			raw := ""
			if i < len(tokens) {
				raw = tokens[i]
			}
			values[i] = Coerce(raw)
		}
		records = append(records, NewRecord(header, values))
	}
	return records
}

// Header returns the trimmed header tokens of text, or nil when the text
// is empty after trimming.
func Header(text string) []string {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}
	return splitFields(lines[0])
}

func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return lineBreak.Split(text, -1)
}

func splitFields(line string) []string {
	fields := strings.Split(line, Delimiter)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
