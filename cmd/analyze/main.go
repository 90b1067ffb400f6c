package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"newscope/internal/config"
	"newscope/internal/pipeline"
	"newscope/pkg/llm"
	"newscope/pkg/market"
	"newscope/pkg/pdftext"
	"newscope/pkg/ragstore"
	"newscope/pkg/search"
	"newscope/pkg/summarize"
)

const documentCollection = "newscope_documents"

// One-shot runner: reads an article from a file or stdin, runs the full
// pipeline once, prints the bundle as JSON.
func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	articlePath := flag.String("file", "", "article text file (default: stdin)")
	pdfPath := flag.String("pdf", "", "optional PDF to ingest for a grounded report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	article, err := readArticle(*articlePath)
	if err != nil {
		log.Fatalf("error reading article: %v", err)
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

	sources := []pipeline.Source{
		{Connector: search.NewSerpAPIClient(cfg.SerpAPIKey, cfg.MaxItemsPerSource, cfg.ConnectorTimeout), MaxItems: cfg.MaxItemsPerSource},
		{Connector: search.NewNaverClient(cfg.NaverClientID, cfg.NaverClientSecret, cfg.MaxItemsPerSource, true, cfg.ConnectorTimeout), MaxItems: cfg.MaxItemsPerSource},
		{Connector: search.NewDeepSearchClient(cfg.DeepSearchKey, cfg.MaxItemsPerSource, cfg.ConnectorTimeout), MaxItems: cfg.MaxItemsPerSource},
	}

	ctx := context.Background()
	input := pipeline.Input{ArticleText: article}

	// The retrieval store is only wired when a document rides along.
	var retriever pipeline.Retriever
	if *pdfPath != "" {
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
		if err := store.EnsureCollection(ctx); err != nil {
			log.Fatalf("error preparing document collection: %v", err)
		}

		data, err := os.ReadFile(*pdfPath)
		if err != nil {
			log.Fatalf("error reading PDF: %v", err)
		}
		text, err := pdftext.ExtractBytes(data)
		if err != nil {
			log.Fatalf("error extracting PDF text: %v", err)
		}

		id, err := store.Ingest(ctx, text, filepath.Base(*pdfPath))
		if err != nil {
			log.Fatalf("error ingesting document: %v", err)
		}

		retriever = store
		input.DocumentID = id
	}

	p := pipeline.New(summarizer, gateway, sources, market.NewFinnhubClient(cfg.FinnhubKey), retriever, pipeline.Options{
		ContentBudget: cfg.ContentBudget,
		RetrievalTopK: cfg.RetrievalTopK,
	})

	bundle, err := p.Run(ctx, input)
	if err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		log.Fatalf("error encoding result: %v", err)
	}
	fmt.Println(string(out))
}

func readArticle(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
