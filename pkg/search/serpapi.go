package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const serpAPIURL = "https://serpapi.com/search.json"

// SerpAPIClient searches Google Scholar through SerpAPI.
type SerpAPIClient struct {
	apiKey     string
	maxResults int
	httpClient *http.Client
}

func NewSerpAPIClient(apiKey string, maxResults int, timeout time.Duration) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *SerpAPIClient) Label() string {
	return "Google Scholar"
}

func (c *SerpAPIClient) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{
		"engine":  {"google_scholar"},
		"q":       {query},
		"api_key": {c.apiKey},
		"num":     {fmt.Sprintf("%d", c.maxResults)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "building request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ConnectorError{Source: c.Label(), Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var raw struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "decoding response", Err: err}
	}

	results := make([]Result, 0, len(raw.OrganicResults))
	for _, r := range raw.OrganicResults {
		results = append(results, Result{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}

	return results, nil
}
