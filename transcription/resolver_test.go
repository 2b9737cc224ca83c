package transcription

import (
	"context"
	"io"
	"testing"

	apperrors "github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Fetch(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

type gatedStrategy struct {
	fakeStrategy
	eligible func(prior []error) bool
}

func (g *gatedStrategy) Eligible(prior []error) bool { return g.eligible(prior) }

type fakeLibrary struct {
	segments []models.Segment
	err      error
	calls    int
}

func (f *fakeLibrary) FetchTranscript(context.Context, string) ([]models.Segment, error) {
	f.calls++
	return f.segments, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestResolverStopsAtFirstSuccess(t *testing.T) {
	first := &fakeStrategy{name: "first", err: errors.New("timeout")}
	second := &fakeStrategy{name: "second", text: "hello world"}
	third := &fakeStrategy{name: "third", text: "never"}

	r := NewResolver(quietLogger(), first, second, third)
	got, err := r.Resolve(context.Background(), "abc12345678")

	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Text)
	assert.Equal(t, "second", got.Source)
	assert.Equal(t, "abc12345678", got.VideoID)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestResolverLibrarySuccessSkipsOtherSources(t *testing.T) {
	lib := &fakeLibrary{segments: []models.Segment{{Text: "Hi"}, {Text: "there"}}}
	api := &fakeCaptionsAPI{}
	audio := &gatedStrategy{fakeStrategy: fakeStrategy{name: "audio"}, eligible: func([]error) bool { return true }}

	r := NewResolver(quietLogger(), NewLibraryStrategy(lib), NewCaptionsAPIStrategy(api, "en"), audio)
	got, err := r.Resolve(context.Background(), "abc12345678")

	require.NoError(t, err)
	assert.Equal(t, "Hi there", got.Text)
	assert.Equal(t, 1, lib.calls)
	assert.Equal(t, 0, api.listCalls)
	assert.Equal(t, 0, audio.calls)
}

func TestResolverErrorPolicy(t *testing.T) {
	tests := []struct {
		name       string
		strategies func() []Strategy
		wantKind   apperrors.Kind
		wantDetail string
	}{
		{
			name: "disabled signal without further fallback",
			strategies: func() []Strategy {
				return []Strategy{NewLibraryStrategy(&fakeLibrary{err: errors.Wrap(ErrTranscriptsDisabled, "library")})}
			},
			wantKind:   apperrors.KindTranscriptsDisabled,
			wantDetail: "captions-library: library: transcripts are disabled for this video",
		},
		{
			name: "disabled signal matched by message",
			strategies: func() []Strategy {
				return []Strategy{&fakeStrategy{name: "lib", err: errors.New("TranscriptsDisabled: subtitles are disabled for this video")}}
			},
			wantKind: apperrors.KindTranscriptsDisabled,
		},
		{
			name: "disabled then failing audio fallback",
			strategies: func() []Strategy {
				return []Strategy{
					&fakeStrategy{name: "lib", err: ErrTranscriptsDisabled},
					&gatedStrategy{fakeStrategy: fakeStrategy{name: "audio", err: errors.New("speech quota")}, eligible: func([]error) bool { return true }},
				}
			},
			wantKind:   apperrors.KindTranscriptsDisabled,
			wantDetail: "lib: transcripts are disabled for this video; audio: speech quota",
		},
		{
			name: "transient failure",
			strategies: func() []Strategy {
				return []Strategy{
					&fakeStrategy{name: "lib", err: errors.New("connection reset")},
					&fakeStrategy{name: "api", err: errors.New("quota exceeded")},
				}
			},
			wantKind:   apperrors.KindSourceUnavailable,
			wantDetail: "lib: connection reset; api: quota exceeded",
		},
		{
			name: "every strategy empty",
			strategies: func() []Strategy {
				return []Strategy{
					&fakeStrategy{name: "lib", text: "   "},
					&fakeStrategy{name: "api", text: ""},
				}
			},
			wantKind: apperrors.KindEmptyResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(quietLogger(), tt.strategies()...)
			got, err := r.Resolve(context.Background(), "abc12345678")

			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			if tt.wantDetail != "" {
				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantDetail, appErr.Details())
			}
		})
	}
}

func TestResolverSkipsIneligibleStrategies(t *testing.T) {
	lib := &fakeStrategy{name: "lib", err: errors.New("connection reset")}
	audio := &gatedStrategy{
		fakeStrategy: fakeStrategy{name: "audio", text: "from audio"},
		eligible: func(prior []error) bool {
			for _, err := range prior {
				if IsDisabled(err) {
					return true
				}
			}
			return false
		},
	}

	r := NewResolver(quietLogger(), lib, audio)
	_, err := r.Resolve(context.Background(), "abc12345678")

	assert.Equal(t, apperrors.KindSourceUnavailable, apperrors.KindOf(err))
	assert.Equal(t, 0, audio.calls)
}

func TestIsDisabled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrTranscriptsDisabled, true},
		{"wrapped sentinel", errors.Wrap(ErrTranscriptsDisabled, "no caption tracks"), true},
		{"library message", errors.New("transcript is disabled on this video"), true},
		{"error name", errors.New("TranscriptsDisabled"), true},
		{"unrelated", errors.New("dial tcp: i/o timeout"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDisabled(tt.err))
		})
	}
}
