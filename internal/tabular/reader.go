package tabular

import (
	"bytes"
	"fmt"
	"io"
)

// utf8BOM is prepended by many Windows spreadsheet exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseReader reads a whole payload and parses it. A leading UTF-8 BOM is
// dropped and invalid UTF-8 sequences are replaced with U+FFFD before
// parsing. Only read errors are returned.
func ParseReader(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return Parse(Clean(data)), nil
}

// Clean strips a UTF-8 BOM and sanitises invalid byte sequences.
func Clean(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	return string(bytes.ToValidUTF8(data, []byte("\uFFFD")))
}
