package summary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	apperrors "github.com/nijaru/yt-summary/errors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeProvider struct {
	blocks  []ContentBlock
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, prompt string) ([]ContentBlock, error) {
	f.prompts = append(f.prompts, prompt)
	return f.blocks, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSummarizePromptShape(t *testing.T) {
	p := &fakeProvider{blocks: []ContentBlock{TextBlock("Summary.")}}
	svc := NewService(p, quietLogger())

	got, err := svc.Summarize(context.Background(), "hello world")

	require.NoError(t, err)
	assert.Equal(t, "Summary.", got)
	require.Len(t, p.prompts, 1)
	assert.True(t, strings.HasPrefix(p.prompts[0], InstructionPrefix))
	assert.True(t, strings.HasSuffix(p.prompts[0], "hello world"))
	assert.Equal(t, InstructionPrefix+"hello world", p.prompts[0])
}

func TestSummarizeContentBlocks(t *testing.T) {
	tests := []struct {
		name   string
		blocks []ContentBlock
		want   string
	}{
		{"first block text", []ContentBlock{TextBlock("A"), TextBlock("B")}, "A"},
		{"first block not text", []ContentBlock{OtherBlock("tool_use"), TextBlock("B")}, ""},
		{"no blocks", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeProvider{blocks: tt.blocks}, quietLogger())
			got, err := svc.Summarize(context.Background(), "transcript")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarizeErrors(t *testing.T) {
	tests := []struct {
		name        string
		svc         func(p *fakeProvider) Service
		providerErr error
		transcript  string
		wantKind    apperrors.Kind
		wantMessage string
		wantCalls   int
	}{
		{
			name:        "blank transcript",
			svc:         func(p *fakeProvider) Service { return NewService(p, quietLogger()) },
			transcript:  "  ",
			wantKind:    apperrors.KindInvalidInput,
			wantMessage: "Transcript is required",
		},
		{
			name:        "missing credential",
			svc:         func(p *fakeProvider) Service { return NewUnconfiguredService("ANTHROPIC_API_KEY", quietLogger()) },
			transcript:  "hello",
			wantKind:    apperrors.KindConfiguration,
			wantMessage: "API key not configured",
		},
		{
			name:        "provider reported message",
			svc:         func(p *fakeProvider) Service { return NewService(p, quietLogger()) },
			providerErr: &ProviderError{Provider: "fake", StatusCode: 529, Message: "Overloaded"},
			transcript:  "hello",
			wantKind:    apperrors.KindSummarization,
			wantMessage: "Overloaded",
			wantCalls:   1,
		},
		{
			name:        "generic failure",
			svc:         func(p *fakeProvider) Service { return NewService(p, quietLogger()) },
			providerErr: errors.New("dial tcp: connection refused"),
			transcript:  "hello",
			wantKind:    apperrors.KindSummarization,
			wantMessage: "Failed to summarize transcript",
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{err: tt.providerErr}
			_, err := tt.svc(p).Summarize(context.Background(), tt.transcript)

			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, appErr.Kind)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Len(t, p.prompts, tt.wantCalls)
		})
	}
}

func TestMissingCredentialNamesVariable(t *testing.T) {
	_, err := NewUnconfiguredService("GEMINI_API_KEY", quietLogger()).Summarize(context.Background(), "hello")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "GEMINI_API_KEY is not set", appErr.Details())
}

func TestAnthropicProvider(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-sonnet-20241022",` +
			`"content":[{"type":"text","text":"Summary."}],"stop_reason":"end_turn",` +
			`"usage":{"input_tokens":1,"output_tokens":1}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", "", 0, -1, option.WithBaseURL(srv.URL))
	blocks, err := p.Complete(context.Background(), BuildPrompt("hello world"))

	require.NoError(t, err)
	assert.Equal(t, []ContentBlock{TextBlock("Summary.")}, blocks)

	assert.Equal(t, "claude-3-5-sonnet-20241022", captured["model"])
	assert.EqualValues(t, 1024, captured["max_tokens"])
	_, hasTemperature := captured["temperature"]
	assert.False(t, hasTemperature)

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "user", msg["role"])
	content := msg["content"].([]interface{})
	assert.Equal(t, InstructionPrefix+"hello world", content[0].(map[string]interface{})["text"])
}

func TestAnthropicProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("bad-key", "", 0, -1, option.WithBaseURL(srv.URL))
	_, err := p.Complete(context.Background(), "prompt")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
	assert.Equal(t, "invalid x-api-key", perr.Message)
}

func TestOpenAIProvider(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,` +
			`"message":{"role":"assistant","content":"Summary."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("perplexity", "test-key", srv.URL, "sonar", 500, 0.7)
	blocks, err := p.Complete(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, []ContentBlock{TextBlock("Summary.")}, blocks)
	assert.Equal(t, "sonar", captured["model"])
	assert.EqualValues(t, 500, captured["max_tokens"])
	assert.InDelta(t, 0.7, captured["temperature"], 0.0001)
}

func TestOpenAIProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("openai", "bad-key", srv.URL, "", 0, -1)
	_, err := p.Complete(context.Background(), "prompt")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Invalid API key", perr.Message)
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
}

func TestPerplexityDefaults(t *testing.T) {
	p := NewPerplexityProvider("key", "", 0, -1)

	assert.Equal(t, "perplexity", p.Name())
	assert.Equal(t, defaultPerplexityModel, p.model)
	assert.Equal(t, defaultPerplexityMaxTokens, p.maxTokens)
	assert.InDelta(t, defaultPerplexityTemperature, p.temperature, 0.0001)
}

func TestGeminiBlocks(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{FunctionCall: &genai.FunctionCall{Name: "lookup"}},
				{Text: "Summary."},
			}},
		}},
	}

	blocks := geminiBlocks(resp)
	assert.Equal(t, []ContentBlock{OtherBlock("function_call"), TextBlock("Summary.")}, blocks)
	assert.Equal(t, "", FirstText(blocks))
	assert.Nil(t, geminiBlocks(nil))
}
