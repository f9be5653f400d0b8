package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/gorewood/buildnotes/internal/config"
)

// OpenAI queries the Chat Completions API.
type OpenAI struct {
	client openai.Client
	name   string
	model  string
}

// NewOpenAI creates an OpenAI provider. Retries are disabled; the SDK
// default timeout applies.
func NewOpenAI(pc config.ProviderConfig, opts ...Option) *OpenAI {
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

	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		name:   pc.Name,
		model:  pc.Model,
	}
}

// ID implements Provider.
func (p *OpenAI) ID() string { return config.ProviderOpenAI }

// Name implements Provider.
func (p *OpenAI) Name() string { return p.name }

// Model returns the model the provider queries.
func (p *OpenAI) Model() string { return p.model }

// Complete sends an optional system message plus the prompt and returns the
// first choice.
func (p *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	params.Temperature = openai.Float(req.Temperature)

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}
