package transcription

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/nijaru/yt-summary/models"
	"github.com/pkg/errors"
)

// VideoClient talks to YouTube's player endpoints. It serves both as the
// captions library and as the audio downloader.
type VideoClient struct {
	client   *youtube.Client
	language string
}

func NewVideoClient(language string, httpClient *http.Client) *VideoClient {
	if language == "" {
		language = "en"
	}
	return &VideoClient{
		client:   &youtube.Client{HTTPClient: httpClient},
		language: language,
	}
}

func (c *VideoClient) FetchTranscript(ctx context.Context, videoID string) ([]models.Segment, error) {
	video, err := c.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, errors.Wrap(err, "get video")
	}

	transcript, err := c.client.GetTranscriptCtx(ctx, video, c.language)
	if err != nil {
		if errors.Is(err, youtube.ErrTranscriptDisabled) {
			return nil, errors.Wrap(ErrTranscriptsDisabled, err.Error())
		}
		return nil, errors.Wrap(err, "get transcript")
	}

	segments := make([]models.Segment, 0, len(transcript))
	for _, seg := range transcript {
		segments = append(segments, models.Segment{
			Text:     seg.Text,
			Start:    time.Duration(seg.StartMs) * time.Millisecond,
			Duration: time.Duration(seg.Duration) * time.Millisecond,
		})
	}
	return segments, nil
}

func (c *VideoClient) DownloadAudio(ctx context.Context, videoID, dir string) (string, error) {
	video, err := c.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", errors.Wrap(err, "get video")
	}

	formats := video.Formats.Type("audio")
	if len(formats) == 0 {
		return "", errors.Errorf("no audio formats for video %s", videoID)
	}
	best := formats[0]
	for _, f := range formats[1:] {
		if f.Bitrate > best.Bitrate {
			best = f
		}
	}

	stream, _, err := c.client.GetStreamContext(ctx, video, &best)
	if err != nil {
		return "", errors.Wrap(err, "open audio stream")
	}
	defer stream.Close()

	path := filepath.Join(dir, "source"+audioExtension(best.MimeType))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create audio file")
	}
	defer f.Close()

	if _, err := io.Copy(f, stream); err != nil {
		return "", errors.Wrap(err, "write audio file")
	}
	return path, nil
}

// audioExtension maps a format mime type such as `audio/webm; codecs="opus"` to a file extension.
func audioExtension(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ".audio"
	}
	switch sub := strings.TrimPrefix(mediaType, "audio/"); sub {
	case "mp4":
		return ".m4a"
	case "webm", "ogg", "mpeg":
		return "." + sub
	default:
		return ".audio"
	}
}
