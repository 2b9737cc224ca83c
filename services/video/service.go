package video

import (
	"context"
	"strings"

	apperrors "github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/summary"
	"github.com/nijaru/yt-summary/validation"
	"github.com/sirupsen/logrus"
)

type Service interface {
	Process(ctx context.Context, url string) (*models.Result, error)
}

// TranscriptResolver produces the transcript text for a video id.
type TranscriptResolver interface {
	Resolve(ctx context.Context, videoID string) (*models.Transcript, error)
}

type service struct {
	resolver   TranscriptResolver
	summarizer summary.Service
	logger     *logrus.Logger
}

// NewService creates the transcript-and-summary pipeline
func NewService(resolver TranscriptResolver, summarizer summary.Service, logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{
		resolver:   resolver,
		summarizer: summarizer,
		logger:     logger,
	}
}

func (s *service) Process(ctx context.Context, url string) (*models.Result, error) {
	const op = "VideoService.Process"

	if strings.TrimSpace(url) == "" {
		return nil, apperrors.InvalidInput(op, nil, "YouTube URL is required")
	}

	videoID, ok := validation.ExtractVideoID(url)
	if !ok {
		s.logger.WithField("url", url).Warn("Rejected URL without a recognizable video id")
		return nil, apperrors.InvalidInput(op, nil, "Invalid YouTube URL")
	}

	logger := s.logger.WithField("video_id", videoID)

	transcript, err := s.resolver.Resolve(ctx, videoID)
	if err != nil {
		return nil, apperrors.WithVideoID(err, videoID)
	}
	logger.WithField("source", transcript.Source).Info("Transcript acquired")

	text, err := s.summarizer.Summarize(ctx, transcript.Text)
	if err != nil {
		return nil, apperrors.WithVideoID(err, videoID)
	}

	return &models.Result{
		VideoID:    videoID,
		Transcript: transcript.Text,
		Summary:    text,
	}, nil
}
