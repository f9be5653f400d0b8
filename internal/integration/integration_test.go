//go:build integration

// Package integration provides integration tests for the buildnotes CLI.
// These tests build the binary, create real git repositories and run it.
//
// Run with: go test -tags=integration ./internal/integration/...
package integration

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const notesFile = "AUTOGEN_NOTES.md"

// testRepo is a helper for creating and managing test git repositories.
type testRepo struct {
	t      *testing.T
	dir    string
	binary string
	home   string
}

// newTestRepo builds the buildnotes binary and initializes a git repo.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	repo := newTestDir(t)
	repo.git("init", "--initial-branch=main")
	repo.git("config", "user.email", "test@example.com")
	repo.git("config", "user.name", "Test User")
	repo.git("config", "commit.gpgsign", "false")
	return repo
}

// newTestDir builds the binary and returns a plain directory that is not a repo.
func newTestDir(t *testing.T) *testRepo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	bin := t.TempDir()
	binary := filepath.Join(bin, "buildnotes")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/buildnotes")
	buildCmd.Dir = findProjectRoot(t)
	buildCmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build buildnotes: %v\n%s", err, output)
	}

	return &testRepo{t: t, dir: t.TempDir(), binary: binary, home: t.TempDir()}
}

// findProjectRoot locates the project root by finding go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// env returns a process environment with no provider credentials and an
// isolated home, global config and git config.
func (r *testRepo) env() []string {
	var env []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		switch key {
		case "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "CLAUDE_MODEL", "OPENAI_MODEL", "BUILDNOTES_OUTPUT":
			continue
		}
		env = append(env, kv)
	}
	return append(env,
		"HOME="+r.home,
		"BUILDNOTES_CONFIG_HOME="+filepath.Join(r.home, "buildnotes"),
		"GIT_CONFIG_GLOBAL="+filepath.Join(r.home, "gitconfig"),
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_CEILING_DIRECTORIES="+filepath.Dir(r.dir),
	)
}

// git runs a git command in the test repo.
func (r *testRepo) git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	cmd.Env = r.env()
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

// createFile creates a file with the given content.
func (r *testRepo) createFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("failed to write file %s: %v", name, err)
	}
}

// commit creates a commit with the given message.
func (r *testRepo) commit(msg string) {
	r.t.Helper()

	r.git("add", "-A")
	r.git("commit", "-m", msg)
}

// buildnotes runs the binary and returns stdout, stderr and the exit code.
func (r *testRepo) buildnotes(args ...string) (string, string, int) {
	r.t.Helper()

	cmd := exec.Command(r.binary, args...)
	cmd.Dir = r.dir
	cmd.Env = r.env()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		r.t.Fatalf("running buildnotes: %v", err)
	}
	return stdout.String(), stderr.String(), code
}

// buildnotesOK runs buildnotes and expects exit code 0.
func (r *testRepo) buildnotesOK(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.buildnotes(args...)
	if code != 0 {
		r.t.Fatalf("buildnotes %v exited %d\nstdout: %s\nstderr: %s", args, code, stdout, stderr)
	}
	return stdout
}

func (r *testRepo) readNotes() string {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.dir, notesFile))
	if err != nil {
		r.t.Fatalf("reading notes file: %v", err)
	}
	return string(data)
}

// TestGenerateCommitsNotesOnly runs buildnotes on a repo with other staged work
// and checks that only the notes file lands in the commit.
func TestGenerateCommitsNotesOnly(t *testing.T) {
	repo := newTestRepo(t)
	repo.createFile("README.md", "# Test Project")
	repo.commit("Initial commit")

	repo.createFile("wip.go", "package main")
	repo.git("add", "wip.go")

	stdout := repo.buildnotesOK()
	if !strings.Contains(stdout, "Wrote "+notesFile) {
		t.Errorf("stdout = %q, want Wrote line", stdout)
	}

	if got := repo.readNotes(); !strings.HasPrefix(got, "# AI Build Notes (") || strings.Count(got, "\n") != 1 {
		t.Errorf("notes = %q, want header only without credentials", got)
	}

	if subject := repo.git("log", "-1", "--format=%s"); subject != "chore(ai): add AUTOGEN_NOTES" {
		t.Errorf("HEAD subject = %q", subject)
	}
	files := repo.git("show", "--name-only", "--format=", "HEAD")
	if files != notesFile {
		t.Errorf("HEAD files = %q, want only %s", files, notesFile)
	}
	if status := repo.git("status", "--porcelain", "wip.go"); !strings.HasPrefix(status, "A ") {
		t.Errorf("wip.go status = %q, want still staged", status)
	}
}

// TestSecondRunOverwritesAndCommits checks that a rerun replaces the file
// rather than appending, and records a new commit.
func TestSecondRunOverwritesAndCommits(t *testing.T) {
	repo := newTestRepo(t)
	repo.createFile("README.md", "# Test Project")
	repo.commit("Initial commit")

	repo.buildnotesOK()
	first := repo.readNotes()
	repo.buildnotesOK("-m", "docs: refresh notes")
	second := repo.readNotes()

	if first == second {
		t.Error("second run should write a new timestamp")
	}
	if strings.Count(second, "# AI Build Notes") != 1 {
		t.Errorf("notes = %q, want exactly one header", second)
	}
	if count := repo.git("rev-list", "--count", "HEAD"); count != "3" {
		t.Errorf("commit count = %s, want 3", count)
	}
	if subject := repo.git("log", "-1", "--format=%s"); subject != "docs: refresh notes" {
		t.Errorf("HEAD subject = %q", subject)
	}
}

// TestNoCommitLeavesFileUntracked checks --no-commit skips git entirely.
func TestNoCommitLeavesFileUntracked(t *testing.T) {
	repo := newTestRepo(t)
	repo.createFile("README.md", "# Test Project")
	repo.commit("Initial commit")

	repo.buildnotesOK("--no-commit")

	if status := repo.git("status", "--porcelain", notesFile); status != "?? "+notesFile {
		t.Errorf("status = %q, want untracked", status)
	}
	if count := repo.git("rev-list", "--count", "HEAD"); count != "1" {
		t.Errorf("commit count = %s, want 1", count)
	}
}

// TestOutsideRepoStillSucceeds checks that a failed stage is reported and the
// run still exits 0.
func TestOutsideRepoStillSucceeds(t *testing.T) {
	dir := newTestDir(t)

	stdout := dir.buildnotesOK()
	if !strings.Contains(stdout, "Commit step skipped: ") {
		t.Errorf("stdout = %q, want commit skipped diagnostic", stdout)
	}
	dir.readNotes()
}

// TestUnwritableOutputExitsTwo checks the only fatal failure.
func TestUnwritableOutputExitsTwo(t *testing.T) {
	repo := newTestRepo(t)
	repo.createFile("blocker", "a file, not a directory")

	stdout, stderr, code := repo.buildnotes("-o", "blocker/"+notesFile)
	if code != 2 {
		t.Fatalf("exit code = %d, want 2\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
	if !strings.Contains(stdout+stderr, "cannot write notes file") {
		t.Errorf("output should explain the write failure:\nstdout: %s\nstderr: %s", stdout, stderr)
	}
}

// TestConfigFileAndStatus runs status against a committed config file.
func TestConfigFileAndStatus(t *testing.T) {
	repo := newTestRepo(t)
	repo.createFile(".buildnotes.yaml", "output: docs/AI_NOTES.md\npublish: false\nprompt_template: security\n")
	repo.commit("Add config")

	stdout := repo.buildnotesOK("status", "--color", "never")
	for _, want := range []string{"File: docs/AI_NOTES.md", "Commit: no", "Template: security", "Repository: yes"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("status should contain %q:\n%s", want, stdout)
		}
	}

	repo.buildnotesOK()
	if _, err := os.Stat(filepath.Join(repo.dir, "docs", "AI_NOTES.md")); err != nil {
		t.Errorf("notes not written to configured path: %v", err)
	}
}
