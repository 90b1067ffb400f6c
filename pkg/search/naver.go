package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const naverAPIURL = "https://openapi.naver.com/v1/search/news.json"

// NaverClient searches the Naver news API. The upstream service historically
// returned zero items for perfectly valid queries, so callers can opt into
// treating an empty result set as an error.
type NaverClient struct {
	clientID     string
	clientSecret string
	maxResults   int
	emptyIsError bool
	httpClient   *http.Client
}

func NewNaverClient(clientID, clientSecret string, maxResults int, emptyIsError bool, timeout time.Duration) *NaverClient {
	return &NaverClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		maxResults:   maxResults,
		emptyIsError: emptyIsError,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (c *NaverClient) Label() string {
	return "Naver News"
}

func (c *NaverClient) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{
		"query":   {query},
		"display": {fmt.Sprintf("%d", c.maxResults)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, naverAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "building request", Err: err}
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ConnectorError{Source: c.Label(), Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var raw struct {
		Items []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			Description string `json:"description"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ConnectorError{Source: c.Label(), Detail: "decoding response", Err: err}
	}

	if c.emptyIsError && len(raw.Items) == 0 {
		return nil, &ConnectorError{Source: c.Label(), Detail: "no results found"}
	}

	results := make([]Result, 0, len(raw.Items))
	for _, item := range raw.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Description,
		})
	}

	return results, nil
}
