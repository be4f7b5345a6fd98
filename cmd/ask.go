package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question answered from the ingested documents",
	Long: `Retrieves the most relevant document chunks for the question and asks
the configured LLM to synthesize an answer grounded only in them.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Int("limit", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().Bool("eval", false, "also self-evaluate the answer quality")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	evalFlag, _ := cmd.Flags().GetBool("eval")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = cfg.MaxResults
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store.Count() == 0 {
		fmt.Println("The knowledge base is empty. Run `kbsearch ingest` first.")
		return nil
	}

	engine, err := createEngine(cfg)
	if err != nil {
		return err
	}

	results, err := store.Search(ctx, question, limit, nil)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	answer, confidence := engine.GenerateAnswer(ctx, question, results)

	fmt.Println(answer)
	fmt.Printf("\nConfidence: %.2f\n", confidence)
	if len(results) > 0 {
		fmt.Println("Sources:")
		seen := make(map[string]bool)
		for _, r := range results {
			src := r.Source()
			if !seen[src] {
				seen[src] = true
				fmt.Printf("  - %s (%.2f)\n", src, r.Score)
			}
		}
	}

	if evalFlag {
		score := engine.EvaluateSynthesis(ctx, question, answer)
		fmt.Printf("Synthesis quality: %.2f\n", score)
	}

	return nil
}
