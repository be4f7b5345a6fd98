package config

// DefaultConfig returns a Config with sensible defaults. The chunking and
// retrieval numbers match the values the engine was tuned with: 1000-token
// chunks with a 200-token overlap and a 0.3 similarity floor.
func DefaultConfig() *Config {
	return &Config{
		Provider:            ProviderOpenRouter,
		Model:               "meta-llama/llama-3-8b-instruct",
		EmbeddingProvider:   ProviderOpenAI,
		EmbeddingModel:      "text-embedding-3-small",
		RateLimitRPM:        0,
		ChunkSize:           1000,
		ChunkOverlap:        200,
		SimilarityThreshold: 0.3,
		MaxResults:          5,
		MaxTokens:           1000,
		Temperature:         0.7,
		DataDir:             ".kbsearch",
		Server: ServerConfig{
			Port:            8000,
			AllowAllOrigins: false,
		},
	}
}
