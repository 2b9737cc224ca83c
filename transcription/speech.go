package transcription

import (
	"bytes"
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// GoogleRecognizer runs long-running recognition on Google Cloud Speech-to-Text.
type GoogleRecognizer struct {
	client   *speech.Client
	language string
	model    string
}

func NewGoogleRecognizer(ctx context.Context, language, model, credentialsFile string) (*GoogleRecognizer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create speech client")
	}
	return &GoogleRecognizer{
		client:   client,
		language: language,
		model:    model,
	}, nil
}

func (g *GoogleRecognizer) Recognize(ctx context.Context, audio []byte) (string, error) {
	op, err := g.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            16000,
			AudioChannelCount:          1,
			LanguageCode:               g.language,
			EnableAutomaticPunctuation: true,
			Model:                      g.model,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "start recognition")
	}

	resp, err := op.Wait(ctx)
	if err != nil {
		return "", errors.Wrap(err, "wait for recognition")
	}
	return joinBestAlternatives(resp.GetResults()), nil
}

func (g *GoogleRecognizer) Close() error {
	return g.client.Close()
}

// joinBestAlternatives concatenates the top alternative of every result.
func joinBestAlternatives(results []*speechpb.SpeechRecognitionResult) string {
	var parts []string
	for _, r := range results {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// WhisperRecognizer sends audio to an OpenAI-compatible transcription endpoint.
type WhisperRecognizer struct {
	client   *openai.Client
	language string
}

func NewWhisperRecognizer(client *openai.Client, language string) *WhisperRecognizer {
	// Whisper takes ISO-639-1 codes, so "en-US" becomes "en".
	if i := strings.IndexByte(language, '-'); i > 0 {
		language = language[:i]
	}
	return &WhisperRecognizer{client: client, language: language}
}

func (w *WhisperRecognizer) Recognize(ctx context.Context, audio []byte) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(audio),
		Language: w.language,
	})
	if err != nil {
		return "", errors.Wrap(err, "whisper transcription")
	}
	return strings.TrimSpace(resp.Text), nil
}
