// Package output provides structured output and error handling for the buildnotes CLI.
//
// # Printer
//
// Every diagnostic the CLI emits goes through a Printer, which switches
// between styled human output and JSON:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.ColorEnabled(colorFlag, cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Wrote AUTOGEN_NOTES.md"})
//	printer.Notice("Commit step skipped: %v", err)
//
// Styles come from lipgloss and collapse to plain text when the writer is not
// a terminal or --color never is given.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: run completed (even if providers or publish failed)
//	output.ExitUserError   // 1: bad flags or configuration
//	output.ExitSystemError // 2: the notes file could not be written
//
// Errors built with NewUserError / NewSystemError carry their exit code;
// main maps them with GetExitCode.
package output
