// Package server wires the MCP tool handlers and creates the server
// instance. No business logic lives here, only composition.
package server

import (
	"github.com/agiletec/airis/internal/mcptools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all airis tools registered.
func New() *server.MCPServer {
	s := server.NewMCPServer(
		"airis-agent",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	confidenceTool := mcptools.NewConfidenceTool()
	s.AddTool(confidenceTool.Definition(), confidenceTool.Handle)

	repoIndexTool := mcptools.NewRepoIndexTool()
	s.AddTool(repoIndexTool.Definition(), repoIndexTool.Handle)

	researchTool := mcptools.NewResearchTool()
	s.AddTool(researchTool.Definition(), researchTool.Handle)

	return s
}

const instructions = `airis-agent exposes developer-productivity checks as MCP tools.

Call confidence_check before starting implementation work to get a
score, an action (proceed/investigate/stop), and a readiness checklist.
Call repo_index to build a compact PROJECT_INDEX of a repository.
Call deep_research to plan a multi-wave research session for a query.`
