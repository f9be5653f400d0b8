package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/buildnotes/internal/config"
	"github.com/gorewood/buildnotes/internal/llm"
	notesmcp "github.com/gorewood/buildnotes/internal/mcp"
	"github.com/gorewood/buildnotes/internal/notes"
	"github.com/gorewood/buildnotes/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(flags *rootFlags, opts []llm.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run buildnotes as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "buildnotes": {
        "command": "buildnotes",
        "args": ["serve"]
      }
    }
  }

Available tools: generate_notes, read_notes, status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol; diagnostics go to stderr.
			printer := output.NewPrinter(cmd.ErrOrStderr(), false, false)
			cfg, err := resolveConfig(printer, *flags)
			if err != nil {
				return err
			}
			server := notesmcp.NewServer(buildVersion(), cfg, generateFunc(cfg, printer, opts))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// generateFunc adapts the resolved config into the MCP generate callback.
func generateFunc(cfg *config.Config, printer *output.Printer, opts []llm.Option) notesmcp.GenerateFunc {
	return func(ctx context.Context, noCommit bool) (*notes.Outcome, error) {
		run := *cfg
		if noCommit {
			run.Publish = false
		}
		gen, err := notes.NewGenerator(&run, printer, opts...)
		if err != nil {
			return nil, err
		}
		return gen.Run(ctx)
	}
}
