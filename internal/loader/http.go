package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

func loadHTTP(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, error) {
	if client == nil {
		return nil, errors.New("loader: http client is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: build request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("loader: fetch %s: unexpected status %s", url, resp.Status)
	}
	return readLimited(resp.Body, url, limit)
}
