package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/kbsearch/internal/rag"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search the knowledge base",
	Long: `Searches the vector index for chunks similar to the query. Results can
be narrowed by metadata filters and reranked by keyword overlap.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default from config)")
	searchCmd.Flags().String("file-type", "", "filter by file extension, e.g. .pdf")
	searchCmd.Flags().String("language", "", "filter by detected language, e.g. en")
	searchCmd.Flags().String("source", "", "filter by source document name")
	searchCmd.Flags().StringSlice("topics", nil, "filter by topic membership")
	searchCmd.Flags().String("date-from", "", "filter by creation date lower bound (RFC 3339 or YYYY-MM-DD)")
	searchCmd.Flags().String("date-to", "", "filter by creation date upper bound")
	searchCmd.Flags().Bool("rerank", false, "rerank results by keyword overlap with the query")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	rerank, _ := cmd.Flags().GetBool("rerank")

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

	filters := filtersFromFlags(cmd)
	results, err := store.Search(ctx, query, limit, filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if rerank {
		ranked := rag.Rerank(query, results)
		results = results[:0]
		for _, r := range ranked {
			results = append(results, r.Result)
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		type jsonResult struct {
			Content  string            `json:"content"`
			Metadata map[string]string `json:"metadata"`
			Score    float64           `json:"score"`
		}
		out := make([]jsonResult, len(results))
		for i, r := range results {
			out[i] = jsonResult{Content: r.Content, Metadata: r.Metadata, Score: r.Score}
		}
		return enc.Encode(out)
	}

	fmt.Println(vectordb.FormatResults(results))
	return nil
}

func filtersFromFlags(cmd *cobra.Command) *vectordb.QueryFilters {
	fileType, _ := cmd.Flags().GetString("file-type")
	language, _ := cmd.Flags().GetString("language")
	source, _ := cmd.Flags().GetString("source")
	topics, _ := cmd.Flags().GetStringSlice("topics")
	dateFrom, _ := cmd.Flags().GetString("date-from")
	dateTo, _ := cmd.Flags().GetString("date-to")

	f := &vectordb.QueryFilters{
		FileType: fileType,
		Language: language,
		Source:   source,
		Topics:   topics,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}
	if f.Empty() {
		return nil
	}
	return f
}
