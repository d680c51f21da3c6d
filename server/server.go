package server

import (
	"github.com/lexandro/docscan/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients and by --version.
const Version = "0.1.0"

// Handlers groups the tool handlers registered on the server.
type Handlers struct {
	List    *tools.ListHandler
	Read    *tools.ReadHandler
	Preview *tools.PreviewHandler
	Search  *tools.SearchHandler
	Status  *tools.StatusHandler
	Rescan  *tools.RescanHandler
}

// Setup creates and configures the MCP server with all tool registrations.
func Setup(handlers Handlers) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "docscan",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server keeps the README.md files and docs/*.md files of every project under one root directory in memory.

Documents are addressed by label:
  - <project>/README.md for a project README
  - <project>/docs/<file>.md for a documentation file

Use docs_list to discover labels, docs_search to find text across all documents, and docs_read or docs_preview to look at one document. The index refreshes automatically when files change; docs_rescan forces a full rescan.`,
		},
	)

	// Register docs_list tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "docs_list",
		Description: `List indexed documents with kind, word count and title.

Pattern examples:
  - "*/README.md" - every project README
  - "ProjectX/**" - everything from one project
  - "*/docs/*" - all docs files`,
	}, handlers.List.Handle)

	// Register docs_search tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "docs_search",
		Description: `Search document text using full-text indexed search.

Query formats:
  - Plain text: word-level matching (e.g., "deployment")
  - "quoted text": exact phrase matching (e.g., "\"vector store\"")
  - /regex/: regular expression matching (e.g., "/agent(s)?/")

Filtering:
  - labelGlob: glob over labels (e.g., "ProjectX/**")
  - kind: readme or docs`,
	}, handlers.Search.Handle)

	// Register docs_read tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "docs_read",
		Description: `Read a document's full text from memory. Returns numbered lines.`,
	}, handlers.Read.Handle)

	// Register docs_preview tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "docs_preview",
		Description: `Show a document's word count and the first 100 characters of its text.`,
	}, handlers.Preview.Handle)

	// Register docs_status tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "docs_status",
		Description: "Show index status: root directory, document counts per kind, total words and characters, uptime and last scan time.",
	}, handlers.Status.Handle)

	// Register docs_rescan tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "docs_rescan",
		Description: "Force a full rescan of the root directory. Clears both indexes and rebuilds them from disk.",
	}, handlers.Rescan.Handle)

	return mcpServer
}
