package video

import (
	"context"
	"io"
	"testing"

	apperrors "github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	transcript *models.Transcript
	err        error
	calls      int
	videoID    string
}

func (f *fakeResolver) Resolve(_ context.Context, videoID string) (*models.Transcript, error) {
	f.calls++
	f.videoID = videoID
	return f.transcript, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(context.Context, string) (string, error) {
	f.calls++
	return f.summary, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestProcess(t *testing.T) {
	resolver := &fakeResolver{transcript: &models.Transcript{VideoID: "abc12345678", Text: "Hi there", Source: "captions-library"}}
	summarizer := &fakeSummarizer{summary: "Summary."}

	got, err := NewService(resolver, summarizer, quietLogger()).Process(context.Background(), "https://youtu.be/abc12345678")

	require.NoError(t, err)
	assert.Equal(t, &models.Result{VideoID: "abc12345678", Transcript: "Hi there", Summary: "Summary."}, got)
	assert.Equal(t, "abc12345678", resolver.videoID)
	assert.Equal(t, 1, summarizer.calls)
}

func TestProcessRejectsInputBeforeNetwork(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantMessage string
	}{
		{"missing url", "", "YouTube URL is required"},
		{"unrecognized url", "not a url", "Invalid YouTube URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{}
			summarizer := &fakeSummarizer{}

			_, err := NewService(resolver, summarizer, quietLogger()).Process(context.Background(), tt.url)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.KindInvalidInput, appErr.Kind)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Equal(t, 0, resolver.calls)
			assert.Equal(t, 0, summarizer.calls)
		})
	}
}

func TestProcessAttachesVideoIDToFailures(t *testing.T) {
	resolver := &fakeResolver{err: apperrors.TranscriptsDisabled("Resolver.Resolve", nil, "Transcripts are disabled for this video")}
	summarizer := &fakeSummarizer{}

	_, err := NewService(resolver, summarizer, quietLogger()).Process(context.Background(), "https://www.youtube.com/watch?v=abc12345678")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindTranscriptsDisabled, appErr.Kind)
	assert.Equal(t, "abc12345678", appErr.VideoID)
	assert.Equal(t, 0, summarizer.calls)
}
