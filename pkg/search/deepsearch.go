package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const deepSearchAPIURL = "https://api.deepsearch.com/v1/compute"

// DeepSearchClient runs a query against the DeepSearch compute API.
type DeepSearchClient struct {
	apiKey     string
	maxResults int
	httpClient *http.Client
}

func NewDeepSearchClient(apiKey string, maxResults int, timeout time.Duration) *DeepSearchClient {
	return &DeepSearchClient{
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *DeepSearchClient) Label() string {
	return "DeepSearch"
}

func (c *DeepSearchClient) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{
		"input": {query},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deepSearchAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "building request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ConnectorError{Source: c.Label(), Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var raw struct {
		Results []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Summary string `json:"summary"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "decoding response", Err: err}
	}

	results := make([]Result, 0, len(raw.Results))
	for _, r := range raw.Results {
		if len(results) >= c.maxResults {
			break
		}
		results = append(results, Result{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Summary,
		})
	}

	return results, nil
}
