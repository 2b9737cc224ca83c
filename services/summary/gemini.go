package summary

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float64
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int, temperature float64) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{
		client:      client,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Complete(ctx context.Context, prompt string) ([]ContentBlock, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.maxTokens > 0 {
		cfg.MaxOutputTokens = p.maxTokens
	}
	if p.temperature >= 0 {
		cfg.Temperature = genai.Ptr(float32(p.temperature))
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{Provider: p.Name(), StatusCode: apiErr.Code, Message: apiErr.Message}
		}
		return nil, errors.Wrap(err, "gemini generate content")
	}
	return geminiBlocks(result), nil
}

func geminiBlocks(result *genai.GenerateContentResponse) []ContentBlock {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil
	}

	parts := result.Candidates[0].Content.Parts
	blocks := make([]ContentBlock, 0, len(parts))
	for _, part := range parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			blocks = append(blocks, TextBlock(part.Text))
			continue
		}
		blocks = append(blocks, OtherBlock(geminiPartType(part)))
	}
	return blocks
}

func geminiPartType(part *genai.Part) string {
	switch {
	case part.FunctionCall != nil:
		return "function_call"
	case part.InlineData != nil:
		return "inline_data"
	case part.ExecutableCode != nil:
		return "executable_code"
	default:
		return "unknown"
	}
}
