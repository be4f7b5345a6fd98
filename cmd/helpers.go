package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/kbsearch/internal/config"
	"github.com/ziadkadry99/kbsearch/internal/embeddings"
	"github.com/ziadkadry99/kbsearch/internal/ingest"
	"github.com/ziadkadry99/kbsearch/internal/llm"
	"github.com/ziadkadry99/kbsearch/internal/processor"
	"github.com/ziadkadry99/kbsearch/internal/rag"
	"github.com/ziadkadry99/kbsearch/internal/registry"
	"github.com/ziadkadry99/kbsearch/internal/tokenizer"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// loadConfig loads and validates the config, providing a friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `kbsearch init` to create a config file", err)
	}
	return cfg, nil
}

// createEmbedder builds the embeddings client. Only OpenAI serves embeddings,
// even when chat goes through OpenRouter; Validate enforces that.
func createEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	envVar := config.APIKeyEnvVar(cfg.EmbeddingProvider)
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is required for embeddings", envVar)
	}
	return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
}

// createProvider builds the chat completion provider from config, rate
// limited when rate_limit_rpm is set.
func createProvider(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimitRPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)
	}
	return provider, nil
}

// createEngine builds the answer synthesis engine from config.
func createEngine(cfg *config.Config) (*rag.Engine, error) {
	provider, err := createProvider(cfg)
	if err != nil {
		return nil, err
	}
	return rag.New(provider, rag.Options{
		SimilarityThreshold: cfg.SimilarityThreshold,
		MaxTokens:           cfg.MaxTokens,
		Temperature:         cfg.Temperature,
	}), nil
}

// openStore creates the vector store and loads any existing snapshot from
// the data directory. A missing snapshot is not an error; the store starts
// empty.
func openStore(cfg *config.Config) (vectordb.Store, error) {
	embedder, err := createEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	if err := store.Load(cfg.DataDir); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "no index snapshot in %s, starting empty: %v\n", cfg.DataDir, err)
		}
	}
	return store, nil
}

// openRegistry opens the document registry in the data directory.
func openRegistry(cfg *config.Config) (*registry.Registry, error) {
	return registry.Open(filepath.Join(cfg.DataDir, "registry.db"))
}

// createIngester wires the document processor, store, and registry into an
// ingestion service.
func createIngester(cfg *config.Config, store vectordb.Store, reg *registry.Registry) (*ingest.Service, error) {
	tk, err := tokenizer.New()
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w", err)
	}
	p, err := processor.New(tk, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	return ingest.New(p, store, reg), nil
}
