package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"newscope/internal/config"
	"newscope/internal/handler"
	"newscope/internal/pipeline"
	"newscope/pkg/llm"
	"newscope/pkg/market"
	"newscope/pkg/pdftext"
	"newscope/pkg/ragstore"
	"newscope/pkg/search"
	"newscope/pkg/summarize"
)

const documentCollection = "newscope_documents"

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	summarizer, err := summarize.NewOllamaSummarizer(cfg.OllamaURL, cfg.SummaryModel)
	if err != nil {
		log.Fatalf("error creating summarizer: %v", err)
	}

	var gateway pipeline.Gateway
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		gateway = llm.NewAnthropicGateway(cfg.AnthropicKey, cfg.GatewayTimeout)
	default:
		gateway = llm.NewOpenAIGateway(cfg.OpenAIKey, cfg.GatewayTimeout)
	}

	// Declaration order matters: the first two sources are primary.
	sources := []pipeline.Source{
		{Connector: search.NewSerpAPIClient(cfg.SerpAPIKey, cfg.MaxItemsPerSource, cfg.ConnectorTimeout), MaxItems: cfg.MaxItemsPerSource},
		{Connector: search.NewNaverClient(cfg.NaverClientID, cfg.NaverClientSecret, cfg.MaxItemsPerSource, true, cfg.ConnectorTimeout), MaxItems: cfg.MaxItemsPerSource},
		{Connector: search.NewDeepSearchClient(cfg.DeepSearchKey, cfg.MaxItemsPerSource, cfg.ConnectorTimeout), MaxItems: cfg.MaxItemsPerSource},
	}

	marketClient := market.NewFinnhubClient(cfg.FinnhubKey)

	conn, err := grpc.Dial(cfg.QdrantAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("error connecting to qdrant: %v", err)
	}
	defer conn.Close()

	embedder, err := ragstore.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("error creating embedder: %v", err)
	}

	store := ragstore.NewStore(conn, embedder, documentCollection, uint64(cfg.EmbeddingDim))
	if err := store.EnsureCollection(context.Background()); err != nil {
		log.Fatalf("error preparing document collection: %v", err)
	}

	p := pipeline.New(summarizer, gateway, sources, marketClient, store, pipeline.Options{
		ContentBudget: cfg.ContentBudget,
		RetrievalTopK: cfg.RetrievalTopK,
	})

	analyzeHandler := handler.NewAnalyzeHandler(p)
	documentHandler := handler.NewDocumentHandler(store, pdftext.ExtractBytes)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/analyze", analyzeHandler.Analyze)
	r.POST("/documents", documentHandler.Upload)
	r.GET("/health", analyzeHandler.GetHealth)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
