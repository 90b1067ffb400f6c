package llm

import (
	"context"
	"fmt"
	"strings"
)

// Gateway is the single integration point for hosted language-model calls.
// Implementations enforce a per-call timeout and return *GatewayError for
// transport failures, non-2xx statuses, malformed bodies, and well-formed
// responses that carry no completion.
type Gateway interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

type GatewayError struct {
	Detail string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm gateway: %s: %v", e.Detail, e.Err)
	}
	return "llm gateway: " + e.Detail
}

func (e *GatewayError) Unwrap() error { return e.Err }

// cleanCompletion strips code fences and surrounding quotes that some models
// wrap short answers in.
func cleanCompletion(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	content = strings.Trim(content, `"`)
	return strings.TrimSpace(content)
}
