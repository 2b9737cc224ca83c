package summary

import (
	"context"
	"strings"

	apperrors "github.com/nijaru/yt-summary/errors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// InstructionPrefix is prepended verbatim to every transcript sent for summarization.
const InstructionPrefix = "Please provide a concise summary of the following transcript:\n\n"

func BuildPrompt(transcript string) string {
	return InstructionPrefix + transcript
}

type service struct {
	provider      Provider
	credentialEnv string
	logger        *logrus.Logger
}

// NewService creates a summary service backed by provider.
func NewService(provider Provider, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		provider: provider,
		logger:   logger,
	}
}

// NewUnconfiguredService returns a service that fails every call with a
// configuration error naming credentialEnv.
func NewUnconfiguredService(credentialEnv string, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		credentialEnv: credentialEnv,
		logger:        logger,
	}
}

func (s *service) Summarize(ctx context.Context, transcript string) (string, error) {
	const op = "SummaryService.Summarize"

	if strings.TrimSpace(transcript) == "" {
		return "", apperrors.InvalidInput(op, nil, "Transcript is required")
	}
	if s.provider == nil {
		return "", apperrors.Configuration(op, errors.Errorf("%s is not set", s.credentialEnv), "API key not configured")
	}

	logger := s.logger.WithFields(logrus.Fields{
		"provider":          s.provider.Name(),
		"transcript_length": len(transcript),
	})
	logger.Info("Requesting summary")

	blocks, err := s.provider.Complete(ctx, BuildPrompt(transcript))
	if err != nil {
		message := "Failed to summarize transcript"
		var perr *ProviderError
		if errors.As(err, &perr) && perr.Message != "" {
			message = perr.Message
		}
		logger.WithError(err).Error("Summary request failed")
		return "", apperrors.Summarization(op, err, message)
	}

	summary := FirstText(blocks)
	if summary == "" {
		logger.WithField("blocks", len(blocks)).Warn("Model reply contained no leading text block")
	}
	return summary, nil
}
