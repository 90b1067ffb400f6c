package summarize

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// Summarizer produces a bounded summary of raw article text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

const (
	defaultMaxTokens = 150
	defaultInputCap  = 6000
)

const summaryPrompt = "Summarize the following news article in 2-4 sentences. Keep all facts: numbers, names, dates, percentages. Output only the summary.\n\n%s"

// OllamaSummarizer runs a local model through the Ollama API. The model is
// CPU/accelerator-bound and lives on the same host, so there is no auth.
type OllamaSummarizer struct {
	client    *api.Client
	model     string
	maxTokens int
	inputCap  int
}

func NewOllamaSummarizer(baseURL, model string) (*OllamaSummarizer, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing ollama URL: %w", err)
	}
	return &OllamaSummarizer{
		client:    api.NewClient(parsed, http.DefaultClient),
		model:     model,
		maxTokens: defaultMaxTokens,
		inputCap:  defaultInputCap,
	}, nil
}

func (s *OllamaSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	// The upstream tokenizer truncated input at its context window; a byte
	// cap before the prompt keeps the same bound.
	if len(text) > s.inputCap {
		text = text[:s.inputCap]
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  s.model,
		Prompt: fmt.Sprintf(summaryPrompt, text),
		Stream: &stream,
		Options: map[string]any{
			"num_predict": s.maxTokens,
			"temperature": 0.3,
		},
	}

	var sb strings.Builder
	err := s.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	return strings.TrimSpace(sb.String()), nil
}
