package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DefaultMaxBytes caps payload size when none is configured (10MB).
const DefaultMaxBytes int64 = 10 << 20

// ErrPayloadTooLarge is returned when a payload exceeds MaxBytes.
var ErrPayloadTooLarge = errors.New("payload too large")

// FileSource reads the payload from a local file.
type FileSource struct {
	Path     string
	MaxBytes int64
}

// Name implements Source.
func (s *FileSource) Name() string { return "file:" + s.Path }

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadError(s.Name(), err)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Source: s.Name(), Reason: "Not Found", Err: err}
		}
		return nil, loadError(s.Name(), err)
	}
	defer f.Close()

	data, err := readLimited(f, s.MaxBytes)
	if err != nil {
		return nil, loadError(s.Name(), err)
	}
	return data, nil
}

// readLimited reads r fully, failing once more than max bytes arrive.
func readLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, max)
	}
	return data, nil
}
