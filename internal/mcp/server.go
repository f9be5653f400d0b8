// Package mcp provides a Model Context Protocol server for buildnotes.
// It exposes notes generation as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/buildnotes/internal/config"
	"github.com/gorewood/buildnotes/internal/notes"
)

// GenerateFunc runs one notes generation. noCommit disables publishing for
// that run only.
type GenerateFunc func(ctx context.Context, noCommit bool) (*notes.Outcome, error)

// NewServer creates an MCP server with all buildnotes tools registered.
func NewServer(version string, cfg *config.Config, generate GenerateFunc) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    config.AppName,
		Version: version,
	}, nil)
	registerTools(server, cfg, generate)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// generateAnnotations marks generation as overwriting the notes file and
// reaching external model APIs.
func generateAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all buildnotes tools to the server.
func registerTools(server *mcp.Server, cfg *config.Config, generate GenerateFunc) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_notes",
		Description: "Ask every configured model provider for a review checklist, overwrite the notes file with the answers, then stage and commit it. Provider and commit failures are reported, not raised.",
		Annotations: generateAnnotations(),
	}, handleGenerateNotes(generate))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_notes",
		Description: "Return the current contents of the notes file and when it was generated.",
		Annotations: readOnlyAnnotations(),
	}, handleReadNotes(cfg.OutputPath))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show enabled model providers with their models in query order, plus the notes file path and prompt source. Never returns credentials.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(cfg))
}
