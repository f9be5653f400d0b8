// Package prompt resolves the instruction sent to every provider.
//
// A prompt is a Markdown file with optional YAML frontmatter. Templates are
// looked up by name in each search directory in turn, then among the
// built-in templates:
//
//	tmpl, err := prompt.Load("review", ".buildnotes/prompts", globalDir)
package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultName is the built-in template used when none is configured.
const DefaultName = "review"

// ErrNotFound is returned when no directory or built-in has the template.
var ErrNotFound = errors.New("prompt template not found")

// Template is a prompt with its frontmatter metadata.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     int    `yaml:"version,omitempty"`

	// Content is the prompt text after the frontmatter.
	Content string `yaml:"-"`
	// Source is the file path, or SourceBuiltin.
	Source string `yaml:"-"`
}

// Info describes an available template.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	// Overrides is the source this template shadows, if any.
	Overrides string `json:"overrides,omitempty"`
}

// Load finds a template by name. dirs are searched in order; built-ins last.
func Load(name string, dirs ...string) (*Template, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid prompt template name %q", name)
	}
	for _, dir := range dirs {
		tmpl, err := loadFromPath(dir, name)
		if err == nil {
			return tmpl, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if tmpl, err := loadBuiltin(name); err == nil {
		return tmpl, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// List returns every template visible from dirs, first match per name.
// A directory template that shadows a built-in is marked in Overrides.
func List(dirs ...string) []Info {
	index := make(map[string]int)
	var infos []Info

	for _, dir := range dirs {
		for _, info := range listFromPath(dir) {
			if _, exists := index[info.Name]; !exists {
				index[info.Name] = len(infos)
				infos = append(infos, info)
			}
		}
	}

	for _, info := range listBuiltins() {
		if i, exists := index[info.Name]; exists {
			infos[i].Overrides = SourceBuiltin
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// loadFromPath loads dir/name.md. A missing file wraps os.ErrNotExist.
func loadFromPath(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}

	path := filepath.Join(dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := parseTemplate(string(data))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	tmpl.Source = path
	return tmpl, nil
}

// listFromPath lists the templates in a directory, skipping unreadable ones.
func listFromPath(dir string) []Info {
	if dir == "" {
		return nil
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		tmpl, err := loadFromPath(dir, name)
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: name, Description: tmpl.Description, Source: tmpl.Source})
	}
	return infos
}

// parseTemplate parses a template from raw content with YAML frontmatter.
func parseTemplate(raw string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	tmpl.Content = strings.TrimSpace(content)
	if tmpl.Content == "" {
		return nil, errors.New("empty prompt")
	}
	return &tmpl, nil
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- at the start and end.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:]
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}
