package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gorewood/buildnotes/internal/config"
)

// Anthropic queries Claude through the Messages API.
type Anthropic struct {
	client anthropic.Client
	name   string
	model  string
}

// NewAnthropic creates a Claude provider. Retries are disabled; the SDK
// default timeout applies.
func NewAnthropic(pc config.ProviderConfig, opts ...Option) *Anthropic {
	o := collectOptions(opts)
	reqOpts := []option.RequestOption{
		option.WithAPIKey(pc.APIKey),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(o.httpClient))
	}

	return &Anthropic{
		client: anthropic.NewClient(reqOpts...),
		name:   pc.Name,
		model:  pc.Model,
	}
}

// ID implements Provider.
func (a *Anthropic) ID() string { return config.ProviderAnthropic }

// Name implements Provider.
func (a *Anthropic) Name() string { return a.name }

// Model returns the model the provider queries.
func (a *Anthropic) Model() string { return a.model }

// Complete sends the prompt as a single user message and joins every text block.
func (a *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	params.Temperature = anthropic.Float(req.Temperature)
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return content.String(), nil
}
