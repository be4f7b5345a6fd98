package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Config is the top-level kbsearch configuration, corresponding to .kbsearch.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`

	// EmbeddingProvider is separate from the chat provider because OpenRouter
	// has no embeddings endpoint; "openai" is the only accepted value.
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	// RateLimitRPM caps chat completion requests per minute. Zero disables
	// rate limiting.
	RateLimitRPM int `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`

	// Chunking parameters, in tokens.
	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`

	// Retrieval and synthesis parameters.
	SimilarityThreshold float64 `yaml:"similarity_threshold" koanf:"similarity_threshold"`
	MaxResults          int     `yaml:"max_results" koanf:"max_results"`
	MaxTokens           int     `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature         float64 `yaml:"temperature" koanf:"temperature"`

	// DataDir holds the vector store snapshot and the document registry.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`

	Server ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
