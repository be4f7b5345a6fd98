package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kbsearch",
	Short: "Retrieval-augmented search over your documents",
	Long: `kbsearch ingests PDF, DOCX, and TXT documents into a semantic vector
index and answers questions about them with an LLM, grounding every
answer in the retrieved document chunks. It can run as a CLI, an HTTP
API, or an MCP server for AI agents.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".kbsearch.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
