// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Var is one KEY=VALUE assignment read from an env file.
type Var struct {
	Key   string
	Value string
}

// Load reads an env file and sets each variable that is unset or empty in
// the environment. It returns the keys it set, in file order.
// A missing file is not an error.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	vars, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	var set []string
	for _, v := range vars {
		if os.Getenv(v.Key) != "" {
			continue
		}
		if err := os.Setenv(v.Key, v.Value); err != nil {
			return set, fmt.Errorf("setting %s from %s: %w", v.Key, path, err)
		}
		set = append(set, v.Key)
	}
	return set, nil
}

// LoadAll loads each path in order. Earlier files win because later files
// never override a variable that is already set. Failures on one file do
// not stop the others; the first error is returned.
func LoadAll(paths ...string) ([]string, error) {
	var (
		set      []string
		firstErr error
	)
	for _, path := range paths {
		keys, err := Load(path)
		set = append(set, keys...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return set, firstErr
}

// Parse reads KEY=VALUE lines. Blank lines, comments and lines without a key
// are skipped.
func Parse(r io.Reader) ([]Var, error) {
	var vars []Var
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		vars = append(vars, Var{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// parseEnvLine extracts KEY=VALUE from a trimmed line.
// An optional "export " prefix and matching quotes around the value are stripped.
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
