// Package config resolves buildnotes settings once at startup.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the buildnotes global configuration directory.
//
// Resolution:
//   - $BUILDNOTES_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/buildnotes if set
//   - %AppData%/buildnotes on Windows
//   - ~/.config/buildnotes on macOS and Linux
func Dir() string {
	if dir := os.Getenv("BUILDNOTES_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvFiles returns the env files to load, highest priority first:
// .env.local and .env in the working directory, then the global env file.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}

// ProjectPromptDir holds repository prompt templates, relative to the working directory.
const ProjectPromptDir = ".buildnotes/prompts"

// PromptDirs returns the prompt template search path, highest priority first.
func PromptDirs() []string {
	dirs := []string{ProjectPromptDir}
	if dir := Dir(); dir != "" {
		dirs = append(dirs, filepath.Join(dir, "prompts"))
	}
	return dirs
}
