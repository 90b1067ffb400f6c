package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDeepSearchSearch(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"title":   "Record profits analysis",
					"link":    "https://deep.example.com/1",
					"summary": "An analysis of this quarter's record profits.",
				},
				{
					"title":   "Sector overview",
					"link":    "https://deep.example.com/2",
					"summary": "Broader sector performance this quarter.",
				},
				{
					"title":   "Third result past the cap",
					"link":    "https://deep.example.com/3",
					"summary": "Should be dropped by maxResults.",
				},
			},
		})
	}))
	defer srv.Close()

	client := &DeepSearchClient{
		apiKey:     "test-key",
		maxResults: 2,
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	results, err := client.Search(context.Background(), "record profits")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, 2, len(results))
	assert.Equal(t, "An analysis of this quarter's record profits.", results[0].Snippet)
}

func TestDeepSearchEmptyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	}))
	defer srv.Close()

	client := &DeepSearchClient{
		apiKey:     "test-key",
		maxResults: 2,
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	results, err := client.Search(context.Background(), "nothing matches this")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(results))
}

func TestDeepSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &DeepSearchClient{
		apiKey:     "test-key",
		maxResults: 2,
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.Search(context.Background(), "record profits")

	var connErr *ConnectorError
	assert.Equal(t, true, errors.As(err, &connErr))
	assert.Equal(t, "DeepSearch", connErr.Source)
	assert.Equal(t, "HTTP 500", connErr.Detail)
}
