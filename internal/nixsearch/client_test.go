// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package nixsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var query map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		assert.InDelta(t, 50, query["size"], 0)

		_, _ = w.Write([]byte(`{
			"hits": {
				"hits": [
					{"_source": {"package_attr_name": "ripgrep", "package_pversion": "14.1.0"}},
					{"_source": {"package_attr_name": "ripgrep-all", "package_pversion": "0.10.6"}}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	records, err := client.Search(context.Background(), "ripgrep")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ripgrep", records[0].AttrName())
	assert.Equal(t, "14.1.0", records[0].Version())
}

func TestClient_Search_NoResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits": {"hits": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Search(context.Background(), "definitely-not-a-package")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestClient_Search_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Search(context.Background(), "git")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestClient_Search_TransportError(t *testing.T) {
	t.Parallel()

	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Search(context.Background(), "git")
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	client := NewClient("", 0)
	assert.Equal(t, DefaultURL, client.url)
	assert.Equal(t, DefaultTimeout, client.client.Timeout)
}
