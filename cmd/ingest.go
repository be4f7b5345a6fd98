package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/kbsearch/internal/extract"
	"github.com/ziadkadry99/kbsearch/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files or directories...]",
	Short: "Ingest documents into the knowledge base",
	Long: `Extracts text from the given PDF, DOCX, or TXT files, splits it into
overlapping token chunks, and indexes them for semantic search.
Directories are scanned for supported files. Files whose content has not
changed since the last ingestion are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No supported documents found.")
		return nil
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.Close()

	svc, err := createIngester(cfg, store, reg)
	if err != nil {
		return err
	}

	results := svc.Files(context.Background(), paths, progress.NewReporter())

	ingested, skipped, chunks := 0, 0, 0
	for _, res := range results {
		if res.Skipped {
			skipped++
			continue
		}
		ingested++
		chunks += res.Chunks
	}

	if err := store.Persist(cfg.DataDir); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	fmt.Printf("Ingested %d document(s) (%d chunks), skipped %d unchanged.\n", ingested, chunks, skipped)
	return nil
}

// collectFiles expands the arguments into a flat list of supported files.
func collectFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && extract.Supported(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}
