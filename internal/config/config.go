package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/buildnotes/internal/output"
	"github.com/gorewood/buildnotes/internal/prompt"
)

// AppName names the binary, the global config directory and the default config file.
const AppName = "buildnotes"

// Provider identifiers accepted in the order list.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Defaults recovered from the build script this tool replaces.
const (
	DefaultOutputPath    = "AUTOGEN_NOTES.md"
	DefaultConfigFile    = ".buildnotes.yaml"
	DefaultCommitMessage = "chore(ai): add AUTOGEN_NOTES"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ProviderConfig holds everything needed to query one provider.
type ProviderConfig struct {
	ID          string
	Name        string // "Claude", "OpenAI"; used in failure notes
	Heading     string // section heading in the notes file
	EnvVar      string // credential variable
	APIKey      string
	Model       string
	ModelEnvVar string
	System      string
	MaxTokens   int
	Temperature float64
}

// Config is the fully resolved run configuration.
// Anthropic and OpenAI are nil when their credential is absent.
type Config struct {
	Anthropic *ProviderConfig
	OpenAI    *ProviderConfig
	Order     []string
	Prompt    string
	// PromptTemplate names the template Prompt came from; "" for an inline prompt.
	PromptTemplate string
	// PromptSource is the template file, prompt.SourceBuiltin, or "inline".
	PromptSource string
	// Sanitize strips conversational preamble and sign-offs from replies.
	Sanitize      bool
	OutputPath    string
	Publish       bool
	CommitMessage string
	// Source is the YAML file that was applied, or "" when none was.
	Source string
}

// Overrides carries command-line flags; zero values leave settings alone.
type Overrides struct {
	ConfigPath     string
	PromptTemplate string
	OutputPath     string
	CommitMessage  string
	NoCommit       bool
}

// Defaults returns the built-in provider settings, keyed by provider ID.
// Credentials are never part of the defaults.
func Defaults() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		ProviderAnthropic: {
			ID:          ProviderAnthropic,
			Name:        "Claude",
			Heading:     "Claude plan",
			EnvVar:      "ANTHROPIC_API_KEY",
			Model:       "claude-3-5-sonnet-20240620",
			ModelEnvVar: "CLAUDE_MODEL",
			MaxTokens:   700,
			Temperature: 0.2,
		},
		ProviderOpenAI: {
			ID:          ProviderOpenAI,
			Name:        "OpenAI",
			Heading:     "OpenAI plan",
			EnvVar:      "OPENAI_API_KEY",
			Model:       "gpt-4o-mini",
			ModelEnvVar: "OPENAI_MODEL",
			System:      "You are an expert code reviewer.",
			MaxTokens:   600,
			Temperature: 0.2,
		},
	}
}

// maxTemperature is the highest temperature each provider's API accepts.
var maxTemperature = map[string]float64{
	ProviderAnthropic: 1,
	ProviderOpenAI:    2,
}

// DefaultOrder lists Claude before OpenAI.
func DefaultOrder() []string {
	return []string{ProviderAnthropic, ProviderOpenAI}
}

// Enabled returns the configured providers whose credential is present,
// in the configured order.
func (c *Config) Enabled() []ProviderConfig {
	var enabled []ProviderConfig
	for _, id := range c.Order {
		if p := c.Provider(id); p != nil {
			enabled = append(enabled, *p)
		}
	}
	return enabled
}

// Provider returns the enabled provider with the given ID, or nil.
func (c *Config) Provider(id string) *ProviderConfig {
	switch id {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	default:
		return nil
	}
}

// fileConfig mirrors .buildnotes.yaml. Pointers distinguish "unset" from zero.
type fileConfig struct {
	Output         string                        `yaml:"output"`
	Order          []string                      `yaml:"order"`
	Prompt         string                        `yaml:"prompt"`
	PromptTemplate string                        `yaml:"prompt_template"`
	Sanitize       *bool                         `yaml:"sanitize"`
	Publish        *bool                         `yaml:"publish"`
	CommitMessage  string                        `yaml:"commit_message"`
	Providers      map[string]fileProviderConfig `yaml:"providers"`
}

type fileProviderConfig struct {
	Model       string   `yaml:"model"`
	System      *string  `yaml:"system"`
	Heading     string   `yaml:"heading"`
	MaxTokens   *int     `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
	APIKey      string   `yaml:"api_key"`
}

// Resolve builds the run configuration.
// Precedence, lowest first: built-in defaults, YAML file, environment, flags.
// Credentials are read only from the environment.
func Resolve(lookup LookupFunc, ov Overrides) (*Config, error) {
	providers := Defaults()
	cfg := &Config{
		Order:          DefaultOrder(),
		PromptTemplate: prompt.DefaultName,
		OutputPath:     DefaultOutputPath,
		Publish:        true,
		CommitMessage:  DefaultCommitMessage,
	}

	file, source, err := readFileConfig(ov.ConfigPath)
	if err != nil {
		return nil, err
	}
	if file != nil {
		cfg.Source = source
		if err := applyFile(cfg, providers, file); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg, providers, lookup)
	applyOverrides(cfg, ov)

	if err := resolvePrompt(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg, providers); err != nil {
		return nil, err
	}

	for _, id := range cfg.Order {
		p := providers[id]
		// Any non-empty value enables the provider, even one that is only
		// whitespace; a bad key then fails into the provider's note.
		key, ok := lookup(p.EnvVar)
		if !ok || key == "" {
			continue
		}
		p.APIKey = strings.TrimSpace(key)
		switch id {
		case ProviderAnthropic:
			cfg.Anthropic = &p
		case ProviderOpenAI:
			cfg.OpenAI = &p
		}
	}

	return cfg, nil
}

// readFileConfig loads an explicit config path (which must exist), or the
// default file when present in the working directory.
func readFileConfig(explicit string) (*fileConfig, string, error) {
	path := explicit
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && explicit == "" {
			return nil, "", nil
		}
		return nil, "", output.NewUserError(fmt.Sprintf("cannot read config file %s: %v", path, err))
	}

	file, err := parseFileConfig(data)
	if err != nil {
		return nil, "", output.NewUserError(fmt.Sprintf("invalid config file %s: %v", path, err))
	}
	return file, path, nil
}

func parseFileConfig(data []byte) (*fileConfig, error) {
	var file fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &file, nil
}

func applyFile(cfg *Config, providers map[string]ProviderConfig, file *fileConfig) error {
	if file.Output != "" {
		cfg.OutputPath = file.Output
	}
	if len(file.Order) > 0 {
		cfg.Order = file.Order
	}
	inline := strings.TrimSpace(file.Prompt)
	if inline != "" && file.PromptTemplate != "" {
		return output.NewUserError("set either prompt or prompt_template in the config file, not both")
	}
	if inline != "" {
		cfg.Prompt = inline
		cfg.PromptTemplate = ""
	}
	if file.PromptTemplate != "" {
		cfg.PromptTemplate = file.PromptTemplate
	}
	if file.Sanitize != nil {
		cfg.Sanitize = *file.Sanitize
	}
	if file.Publish != nil {
		cfg.Publish = *file.Publish
	}
	if file.CommitMessage != "" {
		cfg.CommitMessage = file.CommitMessage
	}

	for id, fp := range file.Providers {
		p, ok := providers[id]
		if !ok {
			return output.NewUserError("unknown provider in config file: " + id)
		}
		if fp.APIKey != "" {
			return output.NewUserError(fmt.Sprintf(
				"providers.%s.api_key is not allowed in the config file; set %s instead", id, p.EnvVar))
		}
		if fp.Model != "" {
			p.Model = fp.Model
		}
		if fp.System != nil {
			p.System = *fp.System
		}
		if fp.Heading != "" {
			p.Heading = fp.Heading
		}
		if fp.MaxTokens != nil {
			p.MaxTokens = *fp.MaxTokens
		}
		if fp.Temperature != nil {
			p.Temperature = *fp.Temperature
		}
		providers[id] = p
	}
	return nil
}

func applyEnv(cfg *Config, providers map[string]ProviderConfig, lookup LookupFunc) {
	for id, p := range providers {
		if model, ok := lookup(p.ModelEnvVar); ok && strings.TrimSpace(model) != "" {
			p.Model = strings.TrimSpace(model)
			providers[id] = p
		}
	}
	if path, ok := lookup("BUILDNOTES_OUTPUT"); ok && strings.TrimSpace(path) != "" {
		cfg.OutputPath = strings.TrimSpace(path)
	}
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.PromptTemplate != "" {
		cfg.PromptTemplate = ov.PromptTemplate
		cfg.Prompt = ""
	}
	if ov.OutputPath != "" {
		cfg.OutputPath = ov.OutputPath
	}
	if ov.CommitMessage != "" {
		cfg.CommitMessage = ov.CommitMessage
	}
	if ov.NoCommit {
		cfg.Publish = false
	}
}

// resolvePrompt loads the named template, when one is selected, into cfg.Prompt.
func resolvePrompt(cfg *Config) error {
	if cfg.PromptTemplate == "" {
		cfg.PromptSource = "inline"
		return nil
	}
	tmpl, err := prompt.Load(cfg.PromptTemplate, PromptDirs()...)
	if err != nil {
		return output.NewUserError(err.Error())
	}
	cfg.Prompt = tmpl.Content
	cfg.PromptSource = tmpl.Source
	return nil
}

func validate(cfg *Config, providers map[string]ProviderConfig) error {
	seen := make(map[string]bool, len(cfg.Order))
	for _, id := range cfg.Order {
		if _, ok := providers[id]; !ok {
			return output.NewUserError(fmt.Sprintf("unknown provider in order: %s (want one of %s)",
				id, strings.Join(DefaultOrder(), ", ")))
		}
		if seen[id] {
			return output.NewUserError("provider listed twice in order: " + id)
		}
		seen[id] = true
	}

	if strings.TrimSpace(cfg.OutputPath) == "" {
		return output.NewUserError("output path must not be empty")
	}

	ids := make([]string, 0, len(providers))
	for id := range providers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		p := providers[id]
		if p.Model == "" {
			return output.NewUserError("model must not be empty for provider " + id)
		}
		if p.MaxTokens <= 0 {
			return output.NewUserError(fmt.Sprintf("max_tokens must be positive for provider %s, got %d", id, p.MaxTokens))
		}
		if limit := maxTemperature[id]; p.Temperature < 0 || p.Temperature > limit {
			return output.NewUserError(fmt.Sprintf("temperature must be between 0 and %g for provider %s, got %g", limit, id, p.Temperature))
		}
	}
	return nil
}
