package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/buildnotes/internal/config"
	"github.com/gorewood/buildnotes/internal/output"
	"github.com/gorewood/buildnotes/internal/prompt"
)

// newPromptsCmd creates the prompts command.
func newPromptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "List available prompt templates",
		Long: `List the prompt templates a run can use with --prompt or prompt_template.

Templates are Markdown files with optional YAML frontmatter (name, description).
They are resolved in order:
  .buildnotes/prompts/<name>.md            (project)
  ~/.config/buildnotes/prompts/<name>.md   (global)
  built-in templates

Examples:
  buildnotes prompts          # List templates
  buildnotes prompts --json   # Output as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
			infos := prompt.List(config.PromptDirs()...)

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"templates": infos})
			}

			printer.Section("Prompt Templates")
			for _, info := range infos {
				detail := info.Source
				if info.Description != "" {
					detail = info.Description + " (" + info.Source + ")"
				}
				if info.Overrides != "" {
					detail += ", overrides " + info.Overrides
				}
				printer.KeyValue(info.Name, detail)
			}
			return nil
		},
	}
}
