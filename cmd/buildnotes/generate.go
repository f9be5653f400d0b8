package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/buildnotes/internal/config"
	"github.com/gorewood/buildnotes/internal/llm"
	"github.com/gorewood/buildnotes/internal/notes"
	"github.com/gorewood/buildnotes/internal/output"
	"github.com/gorewood/buildnotes/internal/prompt"
)

// rootFlags holds the flags shared by generation, status and serve.
type rootFlags struct {
	configPath string
	promptName string
	outputPath string
	message    string
	noCommit   bool
}

func addRunFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default: "+config.DefaultConfigFile+" when present)")
	pf.StringVarP(&flags.promptName, "prompt", "p", "", "Prompt template name (default: "+prompt.DefaultName+")")
	pf.StringVarP(&flags.outputPath, "output", "o", "", "Notes file to write (default: "+config.DefaultOutputPath+")")
	pf.StringVarP(&flags.message, "message", "m", "", "Commit message (default: \""+config.DefaultCommitMessage+"\")")
	pf.BoolVar(&flags.noCommit, "no-commit", false, "Write the notes file without staging or committing it")
}

// overrides converts flags into config overrides.
func (f rootFlags) overrides() config.Overrides {
	return config.Overrides{
		ConfigPath:     f.configPath,
		PromptTemplate: f.promptName,
		OutputPath:     f.outputPath,
		CommitMessage:  f.message,
		NoCommit:       f.noCommit,
	}
}

// resolveConfig resolves configuration from the environment and flags,
// printing any error.
func resolveConfig(printer *output.Printer, flags rootFlags) (*config.Config, error) {
	cfg, err := config.Resolve(os.LookupEnv, flags.overrides())
	if err != nil {
		printer.Error(err)
		return nil, err
	}
	return cfg, nil
}

// runGenerate executes one notes generation.
func runGenerate(cmd *cobra.Command, flags rootFlags, opts []llm.Option) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	cfg, err := resolveConfig(printer, flags)
	if err != nil {
		return err
	}
	if len(cfg.Enabled()) == 0 {
		printer.Notice("No provider credentials set (ANTHROPIC_API_KEY, OPENAI_API_KEY); writing header only")
	}

	gen, err := notes.NewGenerator(cfg, printer, opts...)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outcome, err := gen.Run(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(outcome.Summary())
	}
	return nil
}
