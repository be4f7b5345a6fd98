package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/kbsearch/internal/rag"
	"github.com/ziadkadry99/kbsearch/internal/registry"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing knowledge base tools over stdio.
type Server struct {
	store    vectordb.Store
	engine   *rag.Engine
	registry *registry.Registry
	mcp      *server.MCPServer
}

// NewServer creates an MCP server with the given dependencies. The registry
// may be nil; the list_documents tool then reports an empty catalog.
func NewServer(store vectordb.Store, engine *rag.Engine, reg *registry.Registry) *Server {
	s := &Server{
		store:    store,
		engine:   engine,
		registry: reg,
	}

	s.mcp = server.NewMCPServer(
		"kbsearch",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchTool, s.handleSearch)
	s.mcp.AddTool(askTool, s.handleAsk)
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
