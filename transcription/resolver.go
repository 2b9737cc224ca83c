package transcription

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrTranscriptsDisabled marks a source failure caused by the creator turning captions off.
var ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

var disabledSignatures = []string{
	"transcripts are disabled",
	"transcript is disabled",
	"transcriptsdisabled",
	"subtitles are disabled",
	"captions are disabled",
}

// IsDisabled reports whether err carries the disabled-captions signal, either
// as ErrTranscriptsDisabled in its chain or as a known upstream message.
func IsDisabled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTranscriptsDisabled) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range disabledSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// Strategy is one way of obtaining a transcript.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Gate is implemented by strategies that only run after certain earlier failures.
type Gate interface {
	Eligible(prior []error) bool
}

// Resolver tries its strategies in order and returns the first non-empty transcript.
type Resolver struct {
	strategies []Strategy
	logger     *logrus.Logger
}

func NewResolver(logger *logrus.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Resolver{
		strategies: strategies,
		logger:     logger,
	}
}

func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

func (r *Resolver) Resolve(ctx context.Context, videoID string) (*models.Transcript, error) {
	const op = "Resolver.Resolve"
	logger := r.logger.WithField("video_id", videoID)

	var (
		failures []error
		reasons  []string
		disabled bool
	)

	for _, s := range r.strategies {
		log := logger.WithField("strategy", s.Name())

		if g, ok := s.(Gate); ok && !g.Eligible(failures) {
			log.Debug("Strategy not eligible, skipping")
			continue
		}

		log.Info("Fetching transcript")
		text, err := s.Fetch(ctx, videoID)
		if err != nil {
			failures = append(failures, err)
			reasons = append(reasons, fmt.Sprintf("%s: %v", s.Name(), err))
			if IsDisabled(err) {
				disabled = true
			}
			log.WithError(err).WithField("disabled", IsDisabled(err)).Warn("Transcript strategy failed")
			continue
		}

		if strings.TrimSpace(text) == "" {
			log.Warn("Transcript strategy returned empty text")
			continue
		}

		log.WithField("length", len(text)).Info("Transcript resolved")
		return &models.Transcript{
			VideoID: videoID,
			Text:    text,
			Source:  s.Name(),
		}, nil
	}

	var cause error
	if len(reasons) > 0 {
		cause = errors.New(strings.Join(reasons, "; "))
	}

	switch {
	case disabled:
		return nil, apperrors.TranscriptsDisabled(op, cause, "Transcripts are disabled for this video")
	case len(failures) == 0:
		return nil, apperrors.EmptyResult(op, nil, "No transcript content found for this video")
	default:
		return nil, apperrors.SourceUnavailable(op, cause, "Failed to retrieve transcript")
	}
}
