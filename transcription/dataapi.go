package transcription

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// DataAPI is the CaptionsAPI backed by the YouTube Data API v3.
type DataAPI struct {
	service *youtube.Service
}

func NewDataAPI(ctx context.Context, apiKey string, opts ...option.ClientOption) (*DataAPI, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create youtube service")
	}
	return &DataAPI{service: service}, nil
}

func (d *DataAPI) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	resp, err := d.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	tracks := make([]CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		tracks = append(tracks, CaptionTrack{
			ID:       item.Id,
			Language: item.Snippet.Language,
			Kind:     item.Snippet.TrackKind,
		})
	}
	return tracks, nil
}

func (d *DataAPI) DownloadTrack(ctx context.Context, trackID string) (string, error) {
	resp, err := d.service.Captions.Download(trackID).Tfmt("vtt").Context(ctx).Download()
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read caption body")
	}
	return string(body), nil
}
