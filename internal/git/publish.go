package git

import (
	"context"
	"fmt"
)

// PublishReport records what Publish did. Errors here are diagnostics;
// they never fail a run.
type PublishReport struct {
	Staged    bool
	Committed bool
	StageErr  error
	CommitErr error
}

// OK reports whether the file was both staged and committed.
func (r PublishReport) OK() bool {
	return r.Staged && r.Committed
}

// Publisher stages and commits a single file.
type Publisher struct {
	dir string
}

// NewPublisher returns a Publisher that runs git in dir.
// An empty dir uses the process working directory.
func NewPublisher(dir string) *Publisher {
	return &Publisher{dir: dir}
}

// Stage runs "git add <path>".
func (p *Publisher) Stage(ctx context.Context, path string) error {
	if _, err := runIn(ctx, p.dir, "add", "--", path); err != nil {
		return fmt.Errorf("git add %s: %w", path, err)
	}
	return nil
}

// Commit runs "git commit -m <message> -- <path>", limiting the commit to path.
func (p *Publisher) Commit(ctx context.Context, path, message string) error {
	if _, err := runIn(ctx, p.dir, "commit", "-m", message, "--", path); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// Publish stages path and then commits it. The commit is attempted only
// when staging succeeded. A commit failure is recorded as-is, whether the
// cause is "nothing to commit" or anything else.
func (p *Publisher) Publish(ctx context.Context, path, message string) PublishReport {
	var report PublishReport

	if err := p.Stage(ctx, path); err != nil {
		report.StageErr = err
		return report
	}
	report.Staged = true

	if err := p.Commit(ctx, path, message); err != nil {
		report.CommitErr = err
		return report
	}
	report.Committed = true
	return report
}
