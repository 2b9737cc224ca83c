package main

import (
	"context"
	"io"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/nijaru/yt-summary/config"
	"github.com/nijaru/yt-summary/scripts"
	"github.com/nijaru/yt-summary/services/summary"
	"github.com/nijaru/yt-summary/services/video"
	"github.com/nijaru/yt-summary/transcription"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// deps holds the long-lived collaborators shared by every request.
type deps struct {
	Video   video.Service
	Summary summary.Service
	closers []io.Closer
	logger  *logrus.Logger
}

func (d *deps) Close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			d.logger.WithError(err).Warn("Failed to close client")
		}
	}
}

func build(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*deps, error) {
	d := &deps{logger: log}

	strategies, err := buildStrategies(ctx, cfg, log, d)
	if err != nil {
		d.Close()
		return nil, err
	}
	resolver := transcription.NewResolver(log, strategies...)

	provider, err := buildProvider(ctx, cfg.Summary)
	if err != nil {
		d.Close()
		return nil, err
	}
	if provider == nil {
		_, env := cfg.Summary.Credential()
		log.WithField("env", env).Warn("Summary provider API key not set, summaries will fail")
		d.Summary = summary.NewUnconfiguredService(env, log)
	} else {
		d.Summary = summary.NewService(provider, log)
	}

	d.Video = video.NewService(resolver, d.Summary, log)

	log.WithFields(logrus.Fields{
		"strategies": resolver.Strategies(),
		"provider":   cfg.Summary.Provider,
	}).Info("Pipeline configured")

	return d, nil
}

func buildStrategies(ctx context.Context, cfg *config.Config, log *logrus.Logger, d *deps) ([]transcription.Strategy, error) {
	client := transcription.NewVideoClient(cfg.Transcript.CaptionLanguage, http.DefaultClient)

	strategies := []transcription.Strategy{
		transcription.NewLibraryStrategy(client),
	}

	if cfg.Transcript.YouTubeAPIKey != "" {
		dataAPI, err := transcription.NewDataAPI(ctx, cfg.Transcript.YouTubeAPIKey)
		if err != nil {
			return nil, errors.Wrap(err, "create youtube data api client")
		}
		strategies = append(strategies, transcription.NewCaptionsAPIStrategy(dataAPI, cfg.Transcript.CaptionLanguage))
	} else {
		log.Info("YOUTUBE_API_KEY not set, captions API strategy disabled")
	}

	if !cfg.Transcript.AudioEnabled {
		return strategies, nil
	}

	recognizer, err := buildRecognizer(ctx, cfg, d)
	if err != nil {
		log.WithError(err).Warn("Speech recognizer unavailable, audio strategy disabled")
		return strategies, nil
	}
	if recognizer == nil {
		log.WithField("recognizer", cfg.Speech.Recognizer).Warn("Speech recognizer has no credentials, audio strategy disabled")
		return strategies, nil
	}

	ffmpeg := scripts.NewFFmpeg(cfg.Transcript.FFmpegPath, scripts.NewRunner(log))
	strategies = append(strategies, transcription.NewAudioStrategy(client, ffmpeg, recognizer,
		transcription.WithTempDir(cfg.Transcript.TempDir),
		transcription.WithChunkDuration(cfg.Speech.ChunkDuration),
		transcription.WithFallbackOnAnyError(cfg.Transcript.AudioOnAnyError),
		transcription.WithAudioLogger(log),
	))

	return strategies, nil
}

// buildRecognizer returns nil when the configured recognizer has no credentials.
func buildRecognizer(ctx context.Context, cfg *config.Config, d *deps) (transcription.Recognizer, error) {
	switch cfg.Speech.Recognizer {
	case config.RecognizerWhisper:
		if cfg.Summary.OpenAIAPIKey == "" {
			return nil, nil
		}
		oc := openai.DefaultConfig(cfg.Summary.OpenAIAPIKey)
		if cfg.Summary.OpenAIBaseURL != "" {
			oc.BaseURL = cfg.Summary.OpenAIBaseURL
		}
		return transcription.NewWhisperRecognizer(openai.NewClientWithConfig(oc), cfg.Speech.Language), nil
	default:
		r, err := transcription.NewGoogleRecognizer(ctx, cfg.Speech.Language, cfg.Speech.Model, cfg.Speech.CredentialsFile)
		if err != nil {
			return nil, errors.Wrap(err, "create speech client")
		}
		d.closers = append(d.closers, r)
		return r, nil
	}
}

// buildProvider returns nil when the selected provider's API key is empty.
func buildProvider(ctx context.Context, cfg config.SummaryConfig) (summary.Provider, error) {
	key, _ := cfg.Credential()
	if key == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return summary.NewOpenAIProvider("openai", key, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.MaxTokens, cfg.Temperature), nil
	case config.ProviderPerplexity:
		return summary.NewPerplexityProvider(key, cfg.PerplexityModel, cfg.MaxTokens, cfg.Temperature), nil
	case config.ProviderGemini:
		p, err := summary.NewGeminiProvider(ctx, key, cfg.GeminiModel, cfg.MaxTokens, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		var opts []option.RequestOption
		if cfg.AnthropicBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
		}
		return summary.NewAnthropicProvider(key, cfg.AnthropicModel, cfg.MaxTokens, cfg.Temperature, opts...), nil
	}
}
