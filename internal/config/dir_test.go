package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("BUILDNOTES_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}
	if runtime.GOOS != "windows" && filepath.Base(dir) != "buildnotes" {
		t.Errorf("Dir() = %q, want path ending in 'buildnotes'", dir)
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("BUILDNOTES_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("BUILDNOTES_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := Dir(); got != filepath.Join("/xdg/config", "buildnotes") {
		t.Errorf("Dir() = %q, want %q", got, filepath.Join("/xdg/config", "buildnotes"))
	}
}

func TestEnvFiles_Order(t *testing.T) {
	t.Setenv("BUILDNOTES_CONFIG_HOME", "/custom/path")

	files := EnvFiles()
	want := []string{".env.local", ".env", filepath.Join("/custom/path", "env")}
	if len(files) != len(want) {
		t.Fatalf("EnvFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("EnvFiles()[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestPromptDirs(t *testing.T) {
	t.Setenv("BUILDNOTES_CONFIG_HOME", "/custom/path")

	dirs := PromptDirs()
	want := []string{ProjectPromptDir, filepath.Join("/custom/path", "prompts")}
	if len(dirs) != len(want) || dirs[0] != want[0] || dirs[1] != want[1] {
		t.Errorf("PromptDirs() = %v, want %v", dirs, want)
	}
}
