package transcription

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

type CaptionTrack struct {
	ID       string
	Language string
	Kind     string
}

// CaptionsAPI lists a video's caption tracks and downloads one as WebVTT.
type CaptionsAPI interface {
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
	DownloadTrack(ctx context.Context, trackID string) (string, error)
}

type CaptionsAPIStrategy struct {
	api      CaptionsAPI
	language string
}

func NewCaptionsAPIStrategy(api CaptionsAPI, language string) *CaptionsAPIStrategy {
	if language == "" {
		language = "en"
	}
	return &CaptionsAPIStrategy{api: api, language: language}
}

func (s *CaptionsAPIStrategy) Name() string { return "captions-api" }

func (s *CaptionsAPIStrategy) Fetch(ctx context.Context, videoID string) (string, error) {
	tracks, err := s.api.ListTracks(ctx, videoID)
	if err != nil {
		return "", errors.Wrap(err, "list caption tracks")
	}
	if len(tracks) == 0 {
		return "", errors.Wrap(ErrTranscriptsDisabled, "no caption tracks")
	}

	track := chooseTrack(tracks, s.language)
	body, err := s.api.DownloadTrack(ctx, track.ID)
	if err != nil {
		return "", errors.Wrapf(err, "download caption track %s", track.ID)
	}

	return ParseVTT(body), nil
}

// chooseTrack prefers a track in language (or a regional variant of it) and
// falls back to the first track.
func chooseTrack(tracks []CaptionTrack, language string) CaptionTrack {
	language = strings.ToLower(language)
	for _, t := range tracks {
		lang := strings.ToLower(t.Language)
		if lang == language || strings.HasPrefix(lang, language+"-") {
			return t
		}
	}
	return tracks[0]
}
