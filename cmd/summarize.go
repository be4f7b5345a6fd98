package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [document]",
	Short: "Summarize one ingested document",
	Long:  `Fetches every indexed chunk of the named document and asks the LLM for a concise summary.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	engine, err := createEngine(cfg)
	if err != nil {
		return err
	}

	docs, err := store.GetBySource(ctx, name)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", name, err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("document %q not found", name)
	}

	results := make([]vectordb.Result, len(docs))
	for i, d := range docs {
		results[i] = vectordb.Result{Content: d.Content, Metadata: d.Metadata, Score: 1.0}
	}

	fmt.Println(engine.Summarize(ctx, results))
	return nil
}
