// Package main provides the entry point for the buildnotes CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/buildnotes/internal/config"
	"github.com/gorewood/buildnotes/internal/envfile"
	"github.com/gorewood/buildnotes/internal/llm"
	"github.com/gorewood/buildnotes/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color persistent flag against the command's stdout.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ColorEnabled(mode, cmd.OutOrStdout())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the buildnotes CLI.
// The root command itself generates the notes file. Options are passed to
// every provider client.
func newRootCmd(opts ...llm.Option) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Write AI review notes for this repository",
		Long: `buildnotes asks the configured model providers for a short review checklist,
writes their answers to AUTOGEN_NOTES.md, then stages and commits the file.

Providers are enabled by their credential variables:
  ANTHROPIC_API_KEY  Claude ("Claude plan" section)
  OPENAI_API_KEY     OpenAI ("OpenAI plan" section)

A provider without a credential is skipped. A failing provider leaves a
one-line note in its section. A failing commit is reported and ignored.
The command exits non-zero only when configuration is invalid or the notes
file cannot be written.

Examples:
  buildnotes                       # Generate, stage and commit AUTOGEN_NOTES.md
  buildnotes --no-commit           # Generate without touching git
  buildnotes -o docs/AI_NOTES.md   # Write somewhere else
  buildnotes -p security           # Use the "security" prompt template
  buildnotes --json                # Print a JSON summary of the run`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, flags, opts)
		},
	}

	// Load .env.local (then .env) for API keys that can't be exported to env.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles(cmd)
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	addRunFlags(cmd, &flags)

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newStatusCmd(&flags))
	cmd.AddCommand(newPromptsCmd())
	cmd.AddCommand(newServeCmd(&flags, opts))

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/buildnotes/env (global fallback)
func loadEnvFiles(cmd *cobra.Command) {
	if _, err := envfile.LoadAll(config.EnvFiles()...); err != nil && !isJSONMode(cmd) {
		output.NewPrinter(cmd.ErrOrStderr(), false, false).Notice("Ignoring env file: %v", err)
	}
}
