package transcription

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AudioDownloader saves the best available audio track of a video into dir
// and returns the file path.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoID, dir string) (string, error)
}

// AudioConverter re-encodes src as 16 kHz mono LINEAR16 WAV files of at most
// chunk length, written into dir, and returns them in playback order.
type AudioConverter interface {
	ToLinearPCMChunks(ctx context.Context, src, dir string, chunk time.Duration) ([]string, error)
}

// DefaultChunkDuration keeps each LINEAR16 chunk (32 KB per second) under the
// 10 MB inline audio limit of Google Speech and the 25 MB Whisper upload limit.
const DefaultChunkDuration = 4 * time.Minute

// Recognizer turns LINEAR16 audio into text.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) (string, error)
}

type AudioStrategy struct {
	downloader AudioDownloader
	converter  AudioConverter
	recognizer Recognizer
	tempDir    string
	chunk      time.Duration
	onAnyError bool
	logger     *logrus.Logger
}

type AudioOption func(*AudioStrategy)

// WithTempDir sets the parent directory for per-call scratch directories.
func WithTempDir(dir string) AudioOption {
	return func(s *AudioStrategy) {
		s.tempDir = dir
	}
}

// WithChunkDuration sets the longest stretch of audio sent in one recognition
// call. Non-positive values keep DefaultChunkDuration.
func WithChunkDuration(d time.Duration) AudioOption {
	return func(s *AudioStrategy) {
		if d > 0 {
			s.chunk = d
		}
	}
}

// WithFallbackOnAnyError makes the strategy run after any earlier failure,
// not only after a disabled-captions failure.
func WithFallbackOnAnyError(enabled bool) AudioOption {
	return func(s *AudioStrategy) {
		s.onAnyError = enabled
	}
}

func WithAudioLogger(logger *logrus.Logger) AudioOption {
	return func(s *AudioStrategy) {
		s.logger = logger
	}
}

func NewAudioStrategy(d AudioDownloader, c AudioConverter, r Recognizer, opts ...AudioOption) *AudioStrategy {
	s := &AudioStrategy{
		downloader: d,
		converter:  c,
		recognizer: r,
		tempDir:    os.TempDir(),
		chunk:      DefaultChunkDuration,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AudioStrategy) Name() string { return "audio-transcription" }

func (s *AudioStrategy) Eligible(prior []error) bool {
	if s.onAnyError {
		return true
	}
	for _, err := range prior {
		if IsDisabled(err) {
			return true
		}
	}
	return false
}

func (s *AudioStrategy) Fetch(ctx context.Context, videoID string) (string, error) {
	logger := s.logger.WithField("video_id", videoID)

	dir, err := os.MkdirTemp(s.tempDir, "yt-audio-")
	if err != nil {
		return "", errors.Wrap(err, "create audio scratch dir")
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.WithError(err).WithField("dir", dir).Error("Failed to remove audio scratch dir")
		}
	}()

	src, err := s.downloader.DownloadAudio(ctx, videoID, dir)
	if err != nil {
		return "", errors.Wrap(err, "download audio")
	}
	logger.WithField("file", filepath.Base(src)).Debug("Audio downloaded")

	chunkDir := filepath.Join(dir, "chunks")
	if err := os.Mkdir(chunkDir, 0o700); err != nil {
		return "", errors.Wrap(err, "create chunk dir")
	}

	chunks, err := s.converter.ToLinearPCMChunks(ctx, src, chunkDir, s.chunk)
	if err != nil {
		return "", errors.Wrap(err, "convert audio")
	}
	logger.WithField("chunks", len(chunks)).Debug("Audio converted")

	texts := make([]string, 0, len(chunks))
	for i, path := range chunks {
		audio, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "read audio chunk %d of %d", i+1, len(chunks))
		}

		text, err := s.recognizer.Recognize(ctx, audio)
		if err != nil {
			return "", errors.Wrapf(err, "recognize speech in chunk %d of %d", i+1, len(chunks))
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, " "), nil
}
