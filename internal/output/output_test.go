package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.Success(map[string]any{
		"path":      "AUTOGEN_NOTES.md",
		"providers": 2,
	})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["path"] != "AUTOGEN_NOTES.md" {
		t.Errorf("path = %v, want %q", result["path"], "AUTOGEN_NOTES.md")
	}
	if result["providers"] != float64(2) {
		t.Errorf("providers = %v, want 2", result["providers"])
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewSystemError("cannot write notes file AUTOGEN_NOTES.md"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != "cannot write notes file AUTOGEN_NOTES.md" {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitSystemError {
		t.Errorf("code = %v, want %d", result["code"], ExitSystemError)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "Wrote AUTOGEN_NOTES.md"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if buf.String() != "Wrote AUTOGEN_NOTES.md\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Error(NewUserError("unknown provider in order: gemini"))

	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	if got := stderr.String(); got != "Error: unknown provider in order: gemini\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestPrinter_Notice(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Notice("Commit step skipped: %s", "git not found")

	if got := stdout.String(); got != "Commit step skipped: git not found\n" {
		t.Errorf("stdout = %q", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("notices belong on stdout, stderr = %q", stderr.String())
	}
}

func TestPrinter_NoticeAndInfo_SilentInJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Notice("Commit failed: %s", "nothing to commit")
	printer.Info("Querying %s", "Claude")

	if buf.Len() != 0 {
		t.Errorf("JSON mode should not print notices, got %q", buf.String())
	}
}

func TestPrinter_KeyValueAndSection(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Section("Providers")
	printer.KeyValue("Claude", "enabled")

	want := "\nProviders\n─────────\nClaude: enabled\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewPrinter_ColorStyles(t *testing.T) {
	empty := lipgloss.NewStyle()

	plain := NewPrinter(&bytes.Buffer{}, false, false)
	if plain.styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should have no foreground when color is off")
	}

	colored := NewPrinter(&bytes.Buffer{}, false, true)
	if colored.styles.Error.GetForeground() == empty.GetForeground() {
		t.Error("Error style should have a foreground when color is on")
	}
	if !colored.Colored() {
		t.Error("Colored() = false, want true")
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		mode string
		want bool
	}{
		{mode: "never", want: false},
		{mode: "always", want: true},
		{mode: "auto", want: false},
		{mode: "", want: false},
		{mode: "bogus", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := ColorEnabled(tt.mode, &buf); got != tt.want {
				t.Errorf("ColorEnabled(%q, buffer) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestPrinter_NeverColorHasNoANSI(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ColorEnabled("never", &buf))

	printer.Error(NewUserError("bad config"))
	printer.Notice("Commit failed: %s", "exit status 1")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("--color never should produce no ANSI codes, got: %q", buf.String())
	}
}
