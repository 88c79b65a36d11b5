// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package nixsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultURL is the NixOS search service backend endpoint.
const DefaultURL = "https://search.nixos.org/backend/latest-42-nixos-unstable/_search"

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrSearchFailed wraps transport errors and non-2xx responses.
	ErrSearchFailed = errors.New("search request failed")
	// ErrNoResults marks a well-formed but empty result set. Reported
	// distinctly so the UI can show a warning instead of an error.
	ErrNoResults = errors.New("no packages found")
)

// Client performs package searches against the NixOS search backend.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a search client for url with the given request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		url: url,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
	}
}

// searchResponse mirrors the slice of the Elasticsearch response we consume.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source Record `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search posts the query for text and returns the raw result records.
// Transport failures and non-2xx statuses wrap ErrSearchFailed; an empty
// result set returns ErrNoResults.
func (c *Client) Search(ctx context.Context, text string) ([]Record, error) {
	body, err := json.Marshal(BuildQuery(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrSearchFailed, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %w", ErrSearchFailed, err)
	}

	if len(parsed.Hits.Hits) == 0 {
		return nil, ErrNoResults
	}

	records := make([]Record, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		records = append(records, hit.Source)
	}

	return records, nil
}
