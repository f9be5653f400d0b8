package prompt

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.md
var builtinFS embed.FS

// SourceBuiltin marks templates compiled into the binary.
const SourceBuiltin = "built-in"

// loadBuiltin loads a built-in template by name.
func loadBuiltin(name string) (*Template, error) {
	path := "templates/" + name + ".md"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builtin template %s: %w", path, err)
	}
	tmpl, err := parseTemplate(string(data))
	if err != nil {
		return nil, err
	}
	tmpl.Source = SourceBuiltin
	return tmpl, nil
}

// listBuiltins returns info for all built-in templates.
func listBuiltins() []Info {
	dirEntries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		tmpl, err := loadBuiltin(name)
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: name, Description: tmpl.Description, Source: SourceBuiltin})
	}
	return infos
}
