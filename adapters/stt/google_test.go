package stt

import (
	"context"
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/adapters/audio"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
)

type fakeRecognizeClient struct {
	lastRequest *speechpb.RecognizeRequest
	response    *speechpb.RecognizeResponse
	err         error
}

func (f *fakeRecognizeClient) Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error) {
	f.lastRequest = req
	return f.response, f.err
}

func (f *fakeRecognizeClient) Close() error { return nil }

func newTestGoogle(t *testing.T, client *fakeRecognizeClient) *GoogleSpeechToText {
	return &GoogleSpeechToText{client: client, logger: zaptest.NewLogger(t)}
}

func result(text string) *speechpb.SpeechRecognitionResult {
	return &speechpb.SpeechRecognitionResult{
		Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: text}},
	}
}

func TestGoogleSpeechToText_Recognize(t *testing.T) {
	client := &fakeRecognizeClient{response: &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{result("hello there"), result(" general kenobi ")},
	}}
	g := newTestGoogle(t, client)

	text, err := g.Recognize(context.Background(), []byte("RIFF"), "en-IN")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "hello there general kenobi" {
		t.Errorf("Expected joined results, got %q", text)
	}

	cfg := client.lastRequest.GetConfig()
	if cfg.GetLanguageCode() != "en-IN" {
		t.Errorf("Expected language en-IN, got %s", cfg.GetLanguageCode())
	}
	if cfg.GetEncoding() != speechpb.RecognitionConfig_LINEAR16 {
		t.Errorf("Expected LINEAR16, got %s", cfg.GetEncoding())
	}
	if cfg.GetSampleRateHertz() != 0 {
		t.Errorf("Expected sample rate to come from the WAV header, got %d", cfg.GetSampleRateHertz())
	}
}

func TestGoogleSpeechToText_NoResults(t *testing.T) {
	g := newTestGoogle(t, &fakeRecognizeClient{response: &speechpb.RecognizeResponse{}})

	_, err := g.Recognize(context.Background(), []byte("RIFF"), "hi-IN")
	if !errors.Is(err, domain.ErrUnrecognized) {
		t.Errorf("Expected ErrUnrecognized, got %v", err)
	}
}

func TestClassifyGoogleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"unavailable", status.Error(codes.Unavailable, "down"), true},
		{"quota", status.Error(codes.ResourceExhausted, "quota"), true},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), true},
		{"auth", status.Error(codes.Unauthenticated, "no creds"), true},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad audio"), false},
		{"plain error", errors.New("boom"), false},
		{"cancelled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyGoogleError(tt.err)
			if errors.Is(got, domain.ErrServiceUnavailable) != tt.unavailable {
				t.Errorf("Expected unavailable=%v, got %v", tt.unavailable, got)
			}
		})
	}
}

func TestGoogleSpeechToText_Integration(t *testing.T) {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		t.Skip("GOOGLE_APPLICATION_CREDENTIALS not set, skipping integration test")
	}

	ctx := context.Background()
	g, err := NewGoogleSpeechToText(ctx, GoogleConfig{}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer g.Close()

	// One second of silence: the service should answer, with nothing recognized.
	wav, err := audio.EncodeWAV(make([]int16, 16000), 16000)
	if err != nil {
		t.Fatalf("Failed to encode WAV: %v", err)
	}

	_, err = g.Recognize(ctx, wav, "en-IN")
	if err != nil && !errors.Is(err, domain.ErrUnrecognized) {
		t.Errorf("Expected success or ErrUnrecognized, got %v", err)
	}
}
