package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds every knob the pipeline and its clients need. All values come
// from the environment; Load fails fast when a required key is absent.
type Config struct {
	LLMProvider  string
	OpenAIKey    string
	AnthropicKey string

	SerpAPIKey        string
	NaverClientID     string
	NaverClientSecret string
	DeepSearchKey     string
	FinnhubKey        string

	OllamaURL      string
	SummaryModel   string
	EmbeddingModel string
	EmbeddingDim   int
	QdrantAddr     string

	FrontendURL string
	Port        string

	GatewayTimeout    time.Duration
	ConnectorTimeout  time.Duration
	ContentBudget     int
	MaxItemsPerSource int
	RetrievalTopK     int
}

// Load reads configuration from the environment. It returns an error naming
// every missing required key so a broken deploy fails on the first run.
func Load() (*Config, error) {
	cfg := &Config{
		LLMProvider:  getDefault("LLM_PROVIDER", ProviderOpenAI),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),

		SerpAPIKey:        os.Getenv("SERP_API_KEY"),
		NaverClientID:     os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
		DeepSearchKey:     os.Getenv("DEEPSEARCH_API_KEY"),
		FinnhubKey:        os.Getenv("FINNHUB_API_KEY"),

		OllamaURL:      getDefault("OLLAMA_URL", "http://localhost:11434"),
		SummaryModel:   getDefault("SUMMARY_MODEL", "qwen2.5:7b"),
		EmbeddingModel: getDefault("EMBEDDING_MODEL", "nomic-embed-text"),
		EmbeddingDim:   getInt("EMBEDDING_DIM", 768),
		QdrantAddr:     getDefault("QDRANT_ADDR", "localhost:6334"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
		Port:        getDefault("PORT", "8080"),

		GatewayTimeout:    getDuration("GATEWAY_TIMEOUT", 30*time.Second),
		ConnectorTimeout:  getDuration("CONNECTOR_TIMEOUT", 10*time.Second),
		ContentBudget:     getInt("CONTENT_BUDGET", 4000),
		MaxItemsPerSource: getInt("MAX_ITEMS_PER_SOURCE", 2),
		RetrievalTopK:     getInt("RETRIEVAL_TOP_K", 3),
	}

	var missing []string

	switch cfg.LLMProvider {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case ProviderAnthropic:
		if cfg.AnthropicKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (want %q or %q)", cfg.LLMProvider, ProviderOpenAI, ProviderAnthropic)
	}

	for key, val := range map[string]string{
		"SERP_API_KEY":        cfg.SerpAPIKey,
		"NAVER_CLIENT_ID":     cfg.NaverClientID,
		"NAVER_CLIENT_SECRET": cfg.NaverClientSecret,
		"DEEPSEARCH_API_KEY":  cfg.DeepSearchKey,
		"FINNHUB_API_KEY":     cfg.FinnhubKey,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
