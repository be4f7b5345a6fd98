package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchTool defines the search_knowledge_base MCP tool.
var searchTool = mcp.NewTool("search_knowledge_base",
	mcp.WithDescription("Semantic search over the ingested documents. Returns matching chunks with sources and relevance scores."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
	mcp.WithString("source",
		mcp.Description("Restrict results to a single source document"),
	),
	mcp.WithString("file_type",
		mcp.Description("Restrict results to a file extension, e.g. .pdf"),
	),
	mcp.WithString("language",
		mcp.Description("Restrict results to a detected language, e.g. en"),
	),
)

// askTool defines the ask_knowledge_base MCP tool.
var askTool = mcp.NewTool("ask_knowledge_base",
	mcp.WithDescription("Ask a question and get an answer synthesized from the ingested documents, with a confidence score."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to answer"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Number of document chunks to retrieve for context (default 5)"),
	),
)

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the documents in the knowledge base with chunk counts and ingestion times."),
)
