package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/buildnotes/internal/git"
	notesmcp "github.com/gorewood/buildnotes/internal/mcp"
	"github.com/gorewood/buildnotes/internal/output"
)

// newStatusCmd creates the status command.
func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show providers, output path and git state",
		Long: `Show what a run would do without calling any provider.

Displays each provider in query order with whether its credential variable is
set and the model it would query. Also shows the notes file path, the prompt
source and whether the file would be committed. Credentials are never printed.

Examples:
  buildnotes status          # Show human-readable status
  buildnotes status --json   # Output status as JSON for scripting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, *flags)
		},
	}
}

func runStatus(cmd *cobra.Command, flags rootFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	cfg, err := resolveConfig(printer, flags)
	if err != nil {
		return err
	}
	status := notesmcp.BuildStatus(cfg)
	gitFound := git.Available()
	inRepo := gitFound && git.IsRepo()

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"providers":       status.Providers,
			"output_path":     status.OutputPath,
			"publish":         status.Publish,
			"config_file":     status.ConfigFile,
			"prompt_template": status.PromptTemplate,
			"prompt_source":   status.PromptSource,
			"sanitize":        status.Sanitize,
			"git_found":       gitFound,
			"in_repo":         inRepo,
		})
	}

	printer.Section("Providers")
	for _, p := range status.Providers {
		if p.Enabled {
			printer.KeyValue(p.Name, "enabled ("+p.Model+")")
		} else {
			printer.KeyValue(p.Name, "skipped ("+p.EnvVar+" not set)")
		}
	}

	printer.Section("Output")
	printer.KeyValue("File", status.OutputPath)
	if status.ConfigFile != "" {
		printer.KeyValue("Config", status.ConfigFile)
	}
	printer.KeyValue("Commit", formatBool(status.Publish))

	printer.Section("Prompt")
	if status.PromptTemplate != "" {
		printer.KeyValue("Template", status.PromptTemplate)
	}
	printer.KeyValue("Source", status.PromptSource)
	printer.KeyValue("Sanitize", formatBool(status.Sanitize))

	printer.Section("Git")
	printer.KeyValue("Installed", formatBool(gitFound))
	printer.KeyValue("Repository", formatBool(inRepo))
	return nil
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
