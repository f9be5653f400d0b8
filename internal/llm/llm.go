// Package llm queries hosted language models through their official SDKs.
//
// Each enabled provider gets exactly one request per run. Invoke turns every
// failure into a Result instead of an error so a bad key or an outage never
// aborts the run.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorewood/buildnotes/internal/config"
)

// ErrEmptyResponse is returned when a provider replies with no text.
var ErrEmptyResponse = errors.New("empty response from API")

// Request is a single completion request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64 // always sent; 0 is a valid setting
}

// Provider sends one request to a hosted model.
type Provider interface {
	// ID is the configuration identifier ("anthropic", "openai").
	ID() string
	// Name is the display name used in failure notes ("Claude", "OpenAI").
	Name() string
	// Complete returns the model's raw text reply.
	Complete(ctx context.Context, req Request) (string, error)
}

// Result is the outcome of invoking one provider.
// Exactly one of Text and Err is set.
type Result struct {
	Provider string
	Name     string
	Model    string
	Text     string
	Err      error
	Duration time.Duration
}

// OK reports whether the provider produced text.
func (r Result) OK() bool {
	return r.Err == nil
}

// Body is the text placed in the notes file: the reply, or a one-line
// "<Name> failed: <message>" note.
func (r Result) Body() string {
	if r.Err != nil {
		return FailureNote(r.Name, r.Err)
	}
	return r.Text
}

// FailureNote renders an error as a single line attributed to a provider.
func FailureNote(name string, err error) string {
	return name + " failed: " + strings.Join(strings.Fields(err.Error()), " ")
}

// Invoke calls p once and never returns an error or panics.
// The reply is trimmed; an empty reply counts as a failure.
func Invoke(ctx context.Context, p Provider, req Request) (res Result) {
	res = Result{Provider: p.ID(), Name: p.Name()}
	if m, ok := p.(interface{ Model() string }); ok {
		res.Model = m.Model()
	}

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.Text = ""
			res.Err = fmt.Errorf("unexpected panic: %v", r)
		}
	}()

	text, err := p.Complete(ctx, req)
	if err != nil {
		res.Err = err
		return res
	}

	text = strings.TrimSpace(text)
	if text == "" {
		res.Err = ErrEmptyResponse
		return res
	}
	res.Text = text
	return res
}

// Option customizes provider clients.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(url string) Option {
	return func(o *clientOptions) { o.baseURL = url }
}

// WithHTTPClient replaces the SDK's default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

func collectOptions(opts []Option) clientOptions {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds the provider for a resolved configuration entry.
func New(pc config.ProviderConfig, opts ...Option) (Provider, error) {
	switch pc.ID {
	case config.ProviderAnthropic:
		return NewAnthropic(pc, opts...), nil
	case config.ProviderOpenAI:
		return NewOpenAI(pc, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", pc.ID)
	}
}

// RequestFor builds the request sent to a provider.
func RequestFor(pc config.ProviderConfig, prompt string) Request {
	return Request{
		System:      pc.System,
		Prompt:      prompt,
		MaxTokens:   pc.MaxTokens,
		Temperature: pc.Temperature,
	}
}
