package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lodehq/lode/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

func NewHTTPClient(timeout time.Duration) *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{Timeout: timeout}}
}

// Get performs a GET against a validated https URL. Status handling is left
// to the caller (the registry client needs to tell 404 apart from the rest).
func Get(ctx context.Context, c HTTPClient, url string) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := utils.ParseSecureURL(url)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.Do(req)
}

// FetchBytes downloads url fully into memory and requires a 2xx status.
func FetchBytes(ctx context.Context, c HTTPClient, url string) ([]byte, error) {
	resp, err := Get(ctx, c, url)
	if err != nil {
		return nil, err
	}
	defer utils.Try(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
