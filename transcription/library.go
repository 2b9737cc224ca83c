package transcription

import (
	"context"

	"github.com/nijaru/yt-summary/models"
)

// CaptionsLibrary fetches timed caption segments for a video.
type CaptionsLibrary interface {
	FetchTranscript(ctx context.Context, videoID string) ([]models.Segment, error)
}

type LibraryStrategy struct {
	lib CaptionsLibrary
}

func NewLibraryStrategy(lib CaptionsLibrary) *LibraryStrategy {
	return &LibraryStrategy{lib: lib}
}

func (s *LibraryStrategy) Name() string { return "captions-library" }

func (s *LibraryStrategy) Fetch(ctx context.Context, videoID string) (string, error) {
	segments, err := s.lib.FetchTranscript(ctx, videoID)
	if err != nil {
		return "", err
	}
	return models.JoinSegments(segments), nil
}
