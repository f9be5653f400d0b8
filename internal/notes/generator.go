package notes

import (
	"context"
	"time"

	"github.com/gorewood/buildnotes/internal/config"
	"github.com/gorewood/buildnotes/internal/git"
	"github.com/gorewood/buildnotes/internal/llm"
	"github.com/gorewood/buildnotes/internal/output"
)

// Publisher records the written file in version control.
type Publisher interface {
	Publish(ctx context.Context, path, message string) git.PublishReport
}

// Target is one provider to query and the section it fills.
type Target struct {
	Heading  string
	Request  llm.Request
	Provider llm.Provider
}

// Outcome describes a completed run.
type Outcome struct {
	Path        string
	Bytes       int
	GeneratedAt time.Time
	Results     []llm.Result
	// Publish is nil when publishing is disabled.
	Publish *git.PublishReport
}

// Generator runs one notes generation: query, assemble, write, publish.
type Generator struct {
	Targets       []Target
	OutputPath    string
	CommitMessage string
	// Sanitize strips conversational filler from successful replies.
	Sanitize bool
	// Publisher is nil when publishing is disabled.
	Publisher Publisher
	Printer   *output.Printer
	Now       func() time.Time
}

// NewGenerator builds a Generator for every enabled provider in cfg, in the
// configured order. Options are passed to each provider client.
func NewGenerator(cfg *config.Config, printer *output.Printer, opts ...llm.Option) (*Generator, error) {
	gen := &Generator{
		OutputPath:    cfg.OutputPath,
		CommitMessage: cfg.CommitMessage,
		Sanitize:      cfg.Sanitize,
		Printer:       printer,
		Now:           time.Now,
	}
	for _, pc := range cfg.Enabled() {
		provider, err := llm.New(pc, opts...)
		if err != nil {
			return nil, err
		}
		gen.Targets = append(gen.Targets, Target{
			Heading:  pc.Heading,
			Request:  llm.RequestFor(pc, cfg.Prompt),
			Provider: provider,
		})
	}
	if cfg.Publish {
		gen.Publisher = git.NewPublisher("")
	}
	return gen, nil
}

// Run performs the generation. Providers are queried one after another.
// The returned error is non-nil only when the notes file cannot be written;
// provider and publish failures are reported in the Outcome and printed.
func (g *Generator) Run(ctx context.Context) (*Outcome, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	outcome := &Outcome{Path: g.OutputPath, GeneratedAt: now().UTC()}

	doc := Document{GeneratedAt: outcome.GeneratedAt}
	for _, target := range g.Targets {
		g.Printer.Info("Asking %s...", target.Provider.Name())
		res := llm.Invoke(ctx, target.Provider, target.Request)
		if g.Sanitize && res.OK() {
			res.Text = llm.Sanitize(res.Text)
		}
		if !res.OK() {
			g.Printer.Notice("%s", res.Body())
		}
		outcome.Results = append(outcome.Results, res)
		doc.Sections = append(doc.Sections, Section{Heading: target.Heading, Body: res.Body()})
	}

	content := doc.String()
	if err := Write(g.OutputPath, content); err != nil {
		return outcome, err
	}
	outcome.Bytes = len(content)
	if !g.Printer.IsJSON() {
		g.Printer.Println("Wrote " + g.OutputPath)
	}

	if g.Publisher == nil {
		return outcome, nil
	}
	report := g.Publisher.Publish(ctx, g.OutputPath, g.CommitMessage)
	outcome.Publish = &report
	switch {
	case report.StageErr != nil:
		g.Printer.Notice("Commit step skipped: %v", report.StageErr)
	case report.CommitErr != nil:
		g.Printer.Notice("Commit failed: %v", report.CommitErr)
	}
	return outcome, nil
}

// Summary flattens an Outcome for JSON output.
func (o *Outcome) Summary() map[string]any {
	providers := make([]map[string]any, 0, len(o.Results))
	for _, res := range o.Results {
		entry := map[string]any{
			"id":          res.Provider,
			"name":        res.Name,
			"model":       res.Model,
			"ok":          res.OK(),
			"duration_ms": res.Duration.Milliseconds(),
		}
		if !res.OK() {
			entry["error"] = res.Body()
		}
		providers = append(providers, entry)
	}

	summary := map[string]any{
		"path":         o.Path,
		"bytes":        o.Bytes,
		"generated_at": o.GeneratedAt.Format(TimestampLayout) + "Z",
		"providers":    providers,
	}
	if o.Publish != nil {
		publish := map[string]any{
			"staged":    o.Publish.Staged,
			"committed": o.Publish.Committed,
		}
		if o.Publish.StageErr != nil {
			publish["stage_error"] = o.Publish.StageErr.Error()
		}
		if o.Publish.CommitErr != nil {
			publish["commit_error"] = o.Publish.CommitErr.Error()
		}
		summary["publish"] = publish
	}
	return summary
}
