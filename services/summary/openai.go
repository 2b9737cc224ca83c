package summary

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	PerplexityBaseURL = "https://api.perplexity.ai"

	defaultPerplexityModel       = "llama-3.1-sonar-small-128k-online"
	defaultPerplexityMaxTokens   = 500
	defaultPerplexityTemperature = 0.7
)

// OpenAIProvider talks to any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	client      *openai.Client
	name        string
	model       string
	maxTokens   int
	temperature float64
}

func NewOpenAIProvider(name, apiKey, baseURL, model string, maxTokens int, temperature float64) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(cfg),
		name:        name,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// NewPerplexityProvider applies Perplexity's defaults for any zero or negative argument.
func NewPerplexityProvider(apiKey, model string, maxTokens int, temperature float64) *OpenAIProvider {
	if model == "" {
		model = defaultPerplexityModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultPerplexityMaxTokens
	}
	if temperature < 0 {
		temperature = defaultPerplexityTemperature
	}
	return NewOpenAIProvider("perplexity", apiKey, PerplexityBaseURL, model, maxTokens, temperature)
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) ([]ContentBlock, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: p.maxTokens,
	}
	if p.temperature >= 0 {
		req.Temperature = float32(p.temperature)
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{
				Provider:   p.name,
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
			}
		}
		return nil, errors.Wrapf(err, "%s chat completion", p.name)
	}

	if len(resp.Choices) == 0 {
		return nil, nil
	}
	return []ContentBlock{TextBlock(resp.Choices[0].Message.Content)}, nil
}
