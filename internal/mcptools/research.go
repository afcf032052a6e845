package mcptools

import (
	"context"

	"github.com/agiletec/airis/internal/research"
	"github.com/mark3labs/mcp-go/mcp"
)

// ResearchTool handles the deep_research MCP tool.
type ResearchTool struct{}

// NewResearchTool creates a ResearchTool.
func NewResearchTool() *ResearchTool {
	return &ResearchTool{}
}

// Definition returns the MCP tool definition for deep_research.
func (t *ResearchTool) Definition() mcp.Tool {
	return mcp.NewTool("deep_research",
		mcp.WithDescription(
			"Creates wave/queries plan for multi-step research. "+
				"Returns findings, sources, and confidence scores. "+
				"Integrates with Tavily (web search) and Context7 (official docs).",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Research query to investigate"),
		),
		mcp.WithString("depth",
			mcp.Description("Research depth level"),
			mcp.Enum("quick", "standard", "deep", "exhaustive"),
		),
		mcp.WithArray("constraints",
			mcp.Description("Additional constraints or focus areas"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("seed_sources",
			mcp.Description("Initial sources to start from"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the deep_research tool call.
func (t *ResearchTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	resp := research.Plan(research.Request{
		Query:       query,
		Depth:       research.Depth(req.GetString("depth", string(research.DepthStandard))),
		Constraints: stringsArg(req, "constraints"),
		SeedSources: stringsArg(req, "seed_sources"),
	})

	return jsonResult(map[string]any{
		"summary":    resp.Summary,
		"plan":       resp.Plan,
		"findings":   resp.Findings,
		"sources":    resp.Sources,
		"confidence": resp.Confidence,
	})
}
