package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .kbsearch.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to kbsearch! Let's configure your knowledge base.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openrouter", "openai"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	if cfg.Provider == ProviderOpenAI {
		cfg.Model = "gpt-4o-mini"
	}

	// 2. Model override.
	modelPrompt := promptui.Prompt{
		Label:   "Chat model",
		Default: cfg.Model,
	}
	if model, err := modelPrompt.Run(); err == nil && model != "" {
		cfg.Model = model
	}

	// 3. Chunking parameters.
	chunkPrompt := promptui.Prompt{
		Label:   "Chunk size (tokens)",
		Default: strconv.Itoa(cfg.ChunkSize),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	if v, err := chunkPrompt.Run(); err == nil {
		cfg.ChunkSize, _ = strconv.Atoi(v)
	}

	overlapPrompt := promptui.Prompt{
		Label:   "Chunk overlap (tokens)",
		Default: strconv.Itoa(cfg.ChunkOverlap),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("must be a non-negative integer")
			}
			if n >= cfg.ChunkSize {
				return fmt.Errorf("must be smaller than chunk size (%d)", cfg.ChunkSize)
			}
			return nil
		},
	}
	if v, err := overlapPrompt.Run(); err == nil {
		cfg.ChunkOverlap, _ = strconv.Atoi(v)
	}

	// 4. Data directory.
	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	if v, err := dataDirPrompt.Run(); err == nil && v != "" {
		cfg.DataDir = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".kbsearch.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration saved to .kbsearch.yml")
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		fmt.Printf("Remember to set %s before ingesting or querying.\n", envVar)
	}

	return cfg, nil
}
