package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single audio download
const DefaultTimeout = 60 * time.Second

// ErrEmptyAudio is returned when the source answers 2xx with no body
var ErrEmptyAudio = errors.New("audio source returned an empty body")

// Fetcher downloads meeting recordings over HTTP
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher creates a fetcher with a fixed timeout. maxBytes <= 0 disables the size guard.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch returns the raw bytes at uri. There is no retry and no content-type check.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(uri), nil)
	if err != nil {
		return nil, fmt.Errorf("invalid audio url: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("audio source returned status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		// one extra byte tells an exact-limit file apart from an oversized one
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("audio exceeds %d bytes", f.maxBytes)
	}
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}
	return data, nil
}
