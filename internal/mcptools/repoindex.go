package mcptools

import (
	"context"
	"fmt"

	"github.com/agiletec/airis/internal/repoindex"
	"github.com/mark3labs/mcp-go/mcp"
)

// RepoIndexTool handles the repo_index MCP tool.
type RepoIndexTool struct{}

// NewRepoIndexTool creates a RepoIndexTool.
func NewRepoIndexTool() *RepoIndexTool {
	return &RepoIndexTool{}
}

// Definition returns the MCP tool definition for repo_index.
func (t *RepoIndexTool) Definition() mcp.Tool {
	return mcp.NewTool("repo_index",
		mcp.WithDescription(
			"Generates PROJECT_INDEX.{md,json} with codebase structure. "+
				"Optional on-disk output. 94% token reduction for context.",
		),
		mcp.WithString("repo_path",
			mcp.Required(),
			mcp.Description("Absolute path to the repository"),
		),
		mcp.WithString("mode",
			mcp.Description("Indexing depth: quick, full, update"),
			mcp.Enum("quick", "full", "update"),
		),
		mcp.WithBoolean("include_docs",
			mcp.Description("Include documentation files"),
		),
		mcp.WithBoolean("include_tests",
			mcp.Description("Include test files"),
		),
		mcp.WithNumber("max_entries",
			mcp.Description("Maximum entries per category"),
		),
		mcp.WithString("output_dir",
			mcp.Description("Optional directory to write index files"),
		),
	)
}

// Handle processes the repo_index tool call.
func (t *RepoIndexTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoPath := req.GetString("repo_path", "")
	if repoPath == "" {
		return mcp.NewToolResultError("'repo_path' is required"), nil
	}

	resp, err := repoindex.Generate(repoindex.Request{
		RepoPath:     repoPath,
		Mode:         repoindex.Mode(req.GetString("mode", string(repoindex.ModeFull))),
		IncludeDocs:  boolArg(req, "include_docs", true),
		IncludeTests: boolArg(req, "include_tests", true),
		MaxEntries:   intArg(req, "max_entries", 10),
		OutputDir:    req.GetString("output_dir", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("index failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"markdown":     resp.Markdown,
		"stats":        resp.Stats,
		"output_paths": resp.OutputPaths,
	})
}
