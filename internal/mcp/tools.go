package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/buildnotes/internal/config"
	"github.com/gorewood/buildnotes/internal/notes"
)

// --- Shared types ---

// ProviderStatus is one provider's part of a run.
type ProviderStatus struct {
	ID         string `json:"id"              jsonschema:"provider identifier"`
	Name       string `json:"name"            jsonschema:"provider display name"`
	Model      string `json:"model"           jsonschema:"model queried"`
	OK         bool   `json:"ok"              jsonschema:"whether the provider returned text"`
	Error      string `json:"error,omitempty" jsonschema:"failure note written to the file"`
	DurationMS int64  `json:"duration_ms"     jsonschema:"request duration in milliseconds"`
}

// PublishStatus reports the stage and commit steps.
type PublishStatus struct {
	Staged      bool   `json:"staged"                 jsonschema:"git add succeeded"`
	Committed   bool   `json:"committed"              jsonschema:"git commit succeeded"`
	StageError  string `json:"stage_error,omitempty"  jsonschema:"why staging failed; commit was skipped"`
	CommitError string `json:"commit_error,omitempty" jsonschema:"why the commit failed"`
}

// --- generate_notes tool ---

// GenerateInput is the input for the generate_notes tool.
type GenerateInput struct {
	NoCommit bool `json:"no_commit,omitempty" jsonschema:"write the file without staging or committing it"`
}

// GenerateOutput is the output for the generate_notes tool.
type GenerateOutput struct {
	Path        string           `json:"path"              jsonschema:"notes file written"`
	Bytes       int              `json:"bytes"             jsonschema:"size of the written file"`
	GeneratedAt string           `json:"generated_at"      jsonschema:"header timestamp (UTC)"`
	Providers   []ProviderStatus `json:"providers"         jsonschema:"per-provider results in query order"`
	Publish     *PublishStatus   `json:"publish,omitempty" jsonschema:"stage/commit report; absent when publishing is off"`
}

func handleGenerateNotes(generate GenerateFunc) mcp.ToolHandlerFor[GenerateInput, GenerateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
		outcome, err := generate(ctx, input.NoCommit)
		if err != nil {
			return nil, GenerateOutput{}, fmt.Errorf("generating notes: %w", err)
		}
		return nil, toGenerateOutput(outcome), nil
	}
}

func toGenerateOutput(outcome *notes.Outcome) GenerateOutput {
	out := GenerateOutput{
		Path:        outcome.Path,
		Bytes:       outcome.Bytes,
		GeneratedAt: outcome.GeneratedAt.Format(notes.TimestampLayout) + "Z",
		Providers:   make([]ProviderStatus, 0, len(outcome.Results)),
	}
	for _, res := range outcome.Results {
		status := ProviderStatus{
			ID:         res.Provider,
			Name:       res.Name,
			Model:      res.Model,
			OK:         res.OK(),
			DurationMS: res.Duration.Milliseconds(),
		}
		if !res.OK() {
			status.Error = res.Body()
		}
		out.Providers = append(out.Providers, status)
	}
	if report := outcome.Publish; report != nil {
		out.Publish = &PublishStatus{Staged: report.Staged, Committed: report.Committed}
		if report.StageErr != nil {
			out.Publish.StageError = report.StageErr.Error()
		}
		if report.CommitErr != nil {
			out.Publish.CommitError = report.CommitErr.Error()
		}
	}
	return out
}

// --- read_notes tool ---

// ReadNotesInput is the input for the read_notes tool (no parameters needed).
type ReadNotesInput struct{}

// ReadNotesOutput is the output for the read_notes tool.
type ReadNotesOutput struct {
	Path        string `json:"path"                   jsonschema:"notes file path"`
	Content     string `json:"content"                jsonschema:"full Markdown contents"`
	GeneratedAt string `json:"generated_at,omitempty" jsonschema:"header timestamp, when the header parses"`
}

func handleReadNotes(path string) mcp.ToolHandlerFor[ReadNotesInput, ReadNotesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ReadNotesInput) (*mcp.CallToolResult, ReadNotesOutput, error) {
		content, err := notes.Read(path)
		if err != nil {
			return nil, ReadNotesOutput{}, err
		}

		out := ReadNotesOutput{Path: path, Content: content}
		header, _, _ := strings.Cut(content, "\n")
		if at, err := notes.ParseHeader(header); err == nil {
			out.GeneratedAt = at.Format(notes.TimestampLayout) + "Z"
		}
		return nil, out, nil
	}
}

// --- status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// ProviderInfo describes one known provider.
type ProviderInfo struct {
	ID      string `json:"id"              jsonschema:"provider identifier"`
	Name    string `json:"name"            jsonschema:"provider display name"`
	Enabled bool   `json:"enabled"         jsonschema:"whether the credential variable is set"`
	EnvVar  string `json:"env_var"         jsonschema:"credential variable that enables it"`
	Model   string `json:"model,omitempty" jsonschema:"model queried when enabled"`
}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Providers      []ProviderInfo `json:"providers"                 jsonschema:"providers in query order"`
	OutputPath     string         `json:"output_path"               jsonschema:"notes file path"`
	Publish        bool           `json:"publish"                   jsonschema:"whether runs stage and commit the file"`
	ConfigFile     string         `json:"config_file,omitempty"     jsonschema:"YAML file applied, if any"`
	PromptTemplate string         `json:"prompt_template,omitempty" jsonschema:"prompt template name; empty for an inline prompt"`
	PromptSource   string         `json:"prompt_source"             jsonschema:"where the prompt came from"`
	Sanitize       bool           `json:"sanitize"                  jsonschema:"whether replies are stripped of conversational filler"`
}

func handleStatus(cfg *config.Config) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		return nil, BuildStatus(cfg), nil
	}
}

// BuildStatus summarizes cfg without exposing credentials.
func BuildStatus(cfg *config.Config) StatusOutput {
	defaults := config.Defaults()
	out := StatusOutput{
		Providers:      make([]ProviderInfo, 0, len(cfg.Order)),
		OutputPath:     cfg.OutputPath,
		Publish:        cfg.Publish,
		ConfigFile:     cfg.Source,
		PromptTemplate: cfg.PromptTemplate,
		PromptSource:   cfg.PromptSource,
		Sanitize:       cfg.Sanitize,
	}
	for _, id := range cfg.Order {
		info := ProviderInfo{ID: id, Name: defaults[id].Name, EnvVar: defaults[id].EnvVar}
		if p := cfg.Provider(id); p != nil {
			info.Enabled = true
			info.Model = p.Model
		}
		out.Providers = append(out.Providers, info)
	}
	return out
}
