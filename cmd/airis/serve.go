package main

import (
	"fmt"

	"github.com/agiletec/airis/internal/logging"
	airisserver "github.com/agiletec/airis/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long:  "Expose confidence_check, repo_index, and deep_research as MCP tools over the stdio transport.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Component("mcp")
			logger.Info().Str("version", airisserver.Version).Msg("starting MCP server on stdio")

			s := airisserver.New()
			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
