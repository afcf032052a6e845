package mcptools

import (
	"context"

	"github.com/agiletec/airis/internal/gate"
	"github.com/mark3labs/mcp-go/mcp"
)

// ConfidenceTool handles the confidence_check MCP tool.
type ConfidenceTool struct{}

// NewConfidenceTool creates a ConfidenceTool.
func NewConfidenceTool() *ConfidenceTool {
	return &ConfidenceTool{}
}

// Definition returns the MCP tool definition for confidence_check.
func (t *ConfidenceTool) Definition() mcp.Tool {
	return mcp.NewTool("confidence_check",
		mcp.WithDescription(
			"Pre-implementation confidence assessment. "+
				"Returns score (0.0-1.0), action (proceed/investigate/stop), and checklist. "+
				"Prevents wrong-direction work: 25-250x token savings.",
		),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Description of the task to assess"),
		),
		mcp.WithBoolean("duplicate_check_complete",
			mcp.Description("Whether duplicate work has been checked"),
		),
		mcp.WithBoolean("architecture_check_complete",
			mcp.Description("Whether architecture compliance has been verified"),
		),
		mcp.WithBoolean("official_docs_verified",
			mcp.Description("Whether official documentation has been reviewed"),
		),
		mcp.WithBoolean("oss_reference_complete",
			mcp.Description("Whether OSS references have been consulted"),
		),
		mcp.WithBoolean("root_cause_identified",
			mcp.Description("Whether root cause has been identified (for bugs)"),
		),
	)
}

// Handle processes the confidence_check tool call.
func (t *ConfidenceTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task := req.GetString("task", "")
	if task == "" {
		return mcp.NewToolResultError("'task' is required"), nil
	}

	resp, err := gate.Evaluate(gate.Request{
		Task:                      task,
		DuplicateCheckComplete:    boolArg(req, "duplicate_check_complete", false),
		ArchitectureCheckComplete: boolArg(req, "architecture_check_complete", false),
		OfficialDocsVerified:      boolArg(req, "official_docs_verified", false),
		OSSReferenceComplete:      boolArg(req, "oss_reference_complete", false),
		RootCauseIdentified:       boolArg(req, "root_cause_identified", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"score":  resp.Score,
		"action": resp.Action,
		"checks": resp.Checks,
	})
}
