package config

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func setRequired(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERP_API_KEY", "serp")
	t.Setenv("NAVER_CLIENT_ID", "naver-id")
	t.Setenv("NAVER_CLIENT_SECRET", "naver-secret")
	t.Setenv("DEEPSEARCH_API_KEY", "deep")
	t.Setenv("FINNHUB_API_KEY", "finn")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GATEWAY_TIMEOUT", "")
	t.Setenv("CONTENT_BUDGET", "")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, 30*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 10*time.Second, cfg.ConnectorTimeout)
	assert.Equal(t, 4000, cfg.ContentBudget)
	assert.Equal(t, 2, cfg.MaxItemsPerSource)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, "localhost:6334", cfg.QdrantAddr)
	assert.Equal(t, 768, cfg.EmbeddingDim)
}

func TestLoadMissingKeysNamed(t *testing.T) {
	setRequired(t)
	t.Setenv("SERP_API_KEY", "")
	t.Setenv("FINNHUB_API_KEY", "")

	_, err := Load()

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "SERP_API_KEY"))
	assert.Equal(t, true, strings.Contains(err.Error(), "FINNHUB_API_KEY"))
}

func TestLoadAnthropicProviderNeedsItsKey(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := Load()

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "ANTHROPIC_API_KEY"))
}

func TestLoadUnknownProviderRejected(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_PROVIDER", "mystery")

	_, err := Load()

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "mystery"))
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("GATEWAY_TIMEOUT", "45s")
	t.Setenv("CONTENT_BUDGET", "2000")
	t.Setenv("PORT", "9090")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, 45*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 2000, cfg.ContentBudget)
	assert.Equal(t, "9090", cfg.Port)
}
