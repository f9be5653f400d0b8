// Package git publishes the notes file by shelling out to the git executable.
//
// Publishing is best-effort. Publish stages the file and, only when staging
// succeeded, commits it; every failure is recorded in the returned
// PublishReport instead of being returned as an error:
//
//	report := git.NewPublisher("").Publish(ctx, "AUTOGEN_NOTES.md", "chore(ai): add AUTOGEN_NOTES")
//	if report.StageErr != nil {
//	    // commit was skipped
//	}
//
// # Running Git Commands
//
// For other git commands, use Run or RunContext:
//
//	out, err := git.Run("rev-parse", "--git-dir")
//	out, err := git.RunContext(ctx, "status", "--porcelain")
//
// # Error Handling
//
// Command failures are *output.ExitError values with ExitSystemError. A
// missing git executable is reported as "git not found" rather than an exec
// error. The message carries git's own diagnostic on a single line.
package git
