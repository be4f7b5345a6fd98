package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage the documents in the knowledge base",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer reg.Close()

		records, err := reg.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No documents ingested.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%-40s %6d chunks  %8d bytes  %s\n",
				rec.Filename, rec.ChunkCount, rec.FileSize, rec.IngestedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a document and its indexed chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
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

		found, err := svc.Delete(context.Background(), name)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("document %q not found", name)
		}

		if err := store.Persist(cfg.DataDir); err != nil {
			return fmt.Errorf("persisting index: %w", err)
		}
		fmt.Printf("Deleted %s.\n", name)
		return nil
	},
}

var documentsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer reg.Close()

		stats, err := reg.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("Documents:    %d\n", stats.Documents)
		fmt.Printf("Total chunks: %d\n", stats.TotalChunks)
		fmt.Printf("Total bytes:  %d\n", stats.TotalBytes)
		return nil
	},
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsStatsCmd)
	rootCmd.AddCommand(documentsCmd)
}
