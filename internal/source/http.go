package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// HTTPSource fetches the payload with a GET request.
type HTTPSource struct {
	URL      string
	Client   *http.Client
	MaxBytes int64
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.URL }

// Fetch implements Source. Any non-2xx response is a LoadError carrying
// the response status text.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, loadError(s.Name(), fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, loadError(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Source: s.Name(),
			Status: resp.StatusCode,
			Reason: statusText(resp),
		}
	}

	data, err := readLimited(resp.Body, s.MaxBytes)
	if err != nil {
		return nil, loadError(s.Name(), err)
	}
	return data, nil
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	// resp.Status is "404 Not Found"; servers may send a custom phrase.
	if _, phrase, ok := strings.Cut(resp.Status, " "); ok && phrase != "" {
		return phrase
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
