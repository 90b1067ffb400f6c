package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicGateway struct {
	client  *anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

func NewAnthropicGateway(apiKey string, timeout time.Duration) *AnthropicGateway {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicGateway{
		client:  &client,
		model:   anthropic.ModelClaudeHaiku4_5,
		timeout: timeout,
	}
}

func (g *AnthropicGateway) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", &GatewayError{Detail: "anthropic API error", Err: err}
	}

	if len(resp.Content) == 0 {
		return "", &GatewayError{Detail: "no completion in anthropic response"}
	}

	content := cleanCompletion(resp.Content[0].Text)
	if strings.TrimSpace(content) == "" {
		return "", &GatewayError{Detail: "empty completion from anthropic"}
	}

	return content, nil
}
