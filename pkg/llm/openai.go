package llm

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIGateway struct {
	client  *openai.Client
	model   openai.ChatModel
	timeout time.Duration
}

func NewOpenAIGateway(apiKey string, timeout time.Duration, opts ...option.RequestOption) *OpenAIGateway {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIGateway{
		client:  &client,
		model:   openai.ChatModelGPT4o,
		timeout: timeout,
	}
}

func (g *OpenAIGateway) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", &GatewayError{Detail: "openai API error", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &GatewayError{Detail: "no completion in openai response"}
	}

	content := cleanCompletion(resp.Choices[0].Message.Content)
	if strings.TrimSpace(content) == "" {
		return "", &GatewayError{Detail: "empty completion from openai"}
	}

	return content, nil
}
