package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/gorewood/buildnotes/internal/output"
)

// ErrNotFound is the message used when the git executable cannot be run.
const ErrNotFound = "git not found: ensure git is installed and in PATH"

// Run executes a git command with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context and arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, args ...string) (string, error) {
	return runIn(ctx, "", args...)
}

// runIn runs git in dir, or in the process working directory when dir is "".
func runIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError(ErrNotFound)
		}

		// git commit reports "nothing to commit" on stdout, so fall back to it.
		errMsg := oneLine(stderr.String())
		if errMsg == "" {
			errMsg = oneLine(stdout.String())
		}
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemError("git command failed: " + errMsg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Available reports whether a git executable is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo checks if the current directory is inside a git repository.
func IsRepo() bool {
	_, err := Run("rev-parse", "--git-dir")
	return err == nil
}
