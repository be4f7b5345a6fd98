package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/kbsearch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing
knowledge base search and question answering tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		engine, err := createEngine(cfg)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		// Stdout carries the protocol; status goes to stderr.
		fmt.Fprintf(os.Stderr, "kbsearch MCP server started on stdio (%d chunks indexed)\n", store.Count())

		srv := mcpserver.NewServer(store, engine, reg)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
