package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("expected default provider %q, got %q", ProviderOpenRouter, cfg.Provider)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("expected default chunk_size 1000, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 200 {
		t.Errorf("expected default chunk_overlap 200, got %d", cfg.ChunkOverlap)
	}
	if cfg.SimilarityThreshold != 0.3 {
		t.Errorf("expected default similarity_threshold 0.3, got %f", cfg.SimilarityThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.kbsearch.yml")

	original := DefaultConfig()
	original.Provider = ProviderOpenAI
	original.Model = "gpt-4o-mini"
	original.ChunkSize = 500
	original.ChunkOverlap = 100
	original.SimilarityThreshold = 0.5
	original.DataDir = "data"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.ChunkSize != original.ChunkSize {
		t.Errorf("chunk_size: got %d, want %d", loaded.ChunkSize, original.ChunkSize)
	}
	if loaded.ChunkOverlap != original.ChunkOverlap {
		t.Errorf("chunk_overlap: got %d, want %d", loaded.ChunkOverlap, original.ChunkOverlap)
	}
	if loaded.SimilarityThreshold != original.SimilarityThreshold {
		t.Errorf("similarity_threshold: got %f, want %f", loaded.SimilarityThreshold, original.SimilarityThreshold)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	t.Setenv("KBSEARCH_MODEL", "gpt-4o")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("expected env override model gpt-4o, got %q", cfg.Model)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"missing provider", func(c *Config) { c.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "cohere" }, true},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"openrouter embeddings", func(c *Config) { c.EmbeddingProvider = ProviderOpenRouter }, true},
		{"missing embedding provider", func(c *Config) { c.EmbeddingProvider = "" }, true},
		{"negative rate limit", func(c *Config) { c.RateLimitRPM = -1 }, true},
		{"rate limit set", func(c *Config) { c.RateLimitRPM = 30 }, false},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, true},
		{"overlap equals chunk size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }, true},
		{"overlap exceeds chunk size", func(c *Config) { c.ChunkOverlap = c.ChunkSize + 1 }, true},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }, true},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }, true},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(ProviderOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("openai: got %q", got)
	}
	if got := APIKeyEnvVar(ProviderOpenRouter); got != "OPENROUTER_API_KEY" {
		t.Errorf("openrouter: got %q", got)
	}
	if got := APIKeyEnvVar("bogus"); got != "" {
		t.Errorf("unknown provider: got %q, want empty", got)
	}
}
