package stt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
)

var _ repositories.SpeechToText = (*GoogleSpeechToText)(nil)

// recognizeClient is the part of *speech.Client we use
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	Close() error
}

// GoogleConfig holds Google Cloud Speech settings
type GoogleConfig struct {
	// CredentialsFile is a service account JSON. Empty uses application default credentials.
	CredentialsFile string
	// EnablePunctuation asks the service to add punctuation to transcripts
	EnablePunctuation bool
}

// GoogleSpeechToText implements SpeechToText for Google Cloud
type GoogleSpeechToText struct {
	client            recognizeClient
	enablePunctuation bool
	logger            *zap.Logger
}

// NewGoogleSpeechToText creates a client for Google Cloud Speech-to-Text
func NewGoogleSpeechToText(ctx context.Context, config GoogleConfig, logger *zap.Logger) (*GoogleSpeechToText, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &GoogleSpeechToText{
		client:            client,
		enablePunctuation: config.EnablePunctuation,
		logger:            logger,
	}, nil
}

// Recognize transcribes one WAV chunk. The sample rate is read from the WAV header.
func (g *GoogleSpeechToText) Recognize(ctx context.Context, audio []byte, languageCode string) (string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: g.enablePunctuation,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", classifyGoogleError(err)
	}

	var parts []string
	for _, result := range resp.GetResults() {
		if alternatives := result.GetAlternatives(); len(alternatives) > 0 {
			// Take the best alternative
			if text := strings.TrimSpace(alternatives[0].GetTranscript()); text != "" {
				parts = append(parts, text)
			}
		}
	}
	if len(parts) == 0 {
		return "", domain.ErrUnrecognized
	}

	return strings.Join(parts, " "), nil
}

// Close releases the underlying gRPC connection
func (g *GoogleSpeechToText) Close() error {
	return g.client.Close()
}

// classifyGoogleError maps transport failures to ErrServiceUnavailable.
// Everything else (bad audio, bad language code) stays a per-chunk error.
func classifyGoogleError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("failed to recognize speech: %w", err)
	}

	switch st.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded,
		codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", domain.ErrServiceUnavailable, st.Message())
	default:
		return fmt.Errorf("failed to recognize speech: %w", err)
	}
}
