package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

const (
	// WhatsApp voice notes are Opus in an Ogg container.
	voiceNoteSampleRate = 16000
	maxInlineAudio      = 10 << 20
)

// ErrEmptyTranscript is returned when recognition produced no text.
var ErrEmptyTranscript = errors.New("speech recognition returned no transcript")

// Transcriber turns voice notes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// GoogleTranscriber uses Cloud Speech-to-Text v1.
type GoogleTranscriber struct {
	client    *speech.Client
	recognize recognizeFunc
	language  string
}

// NewGoogleTranscriber authenticates with a service-account file.
func NewGoogleTranscriber(ctx context.Context, credentialsFile, language string) (*GoogleTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	t := &GoogleTranscriber{client: client, language: language}
	t.recognize = func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	}
	return t, nil
}

// Transcribe recognises a single Ogg/Opus voice note.
func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio is empty")
	}
	if len(audio) > maxInlineAudio {
		return "", fmt.Errorf("audio too large: %d bytes", len(audio))
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_OGG_OPUS,
			SampleRateHertz:            voiceNoteSampleRate,
			LanguageCode:               t.language,
			AudioChannelCount:          1,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := t.recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}
	text := joinTranscript(resp)
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

// Close releases the underlying gRPC connection.
func (t *GoogleTranscriber) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}

// joinTranscript takes the top alternative of every result.
func joinTranscript(resp *speechpb.RecognizeResponse) string {
	if resp == nil {
		return ""
	}
	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		transcript.WriteString(result.Alternatives[0].Transcript + " ")
	}
	return strings.TrimSpace(transcript.String())
}
