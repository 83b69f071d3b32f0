package stt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/adapters/audio"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
)

func newWhisperServer(t *testing.T, status int, body string, gotLanguage *string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if gotLanguage != nil {
			*gotLanguage = r.FormValue("language")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestWhisper(t *testing.T, server *httptest.Server) *OpenAISpeechToText {
	o, err := NewOpenAISpeechToText(OpenAIConfig{APIKey: "test", BaseURL: server.URL + "/v1"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create recognizer: %v", err)
	}
	return o
}

func TestOpenAISpeechToText_Recognize(t *testing.T) {
	var language string
	server := newWhisperServer(t, http.StatusOK, `{"text":" namaskaram "}`, &language)
	o := newTestWhisper(t, server)

	text, err := o.Recognize(context.Background(), []byte("RIFF"), "ml-IN")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "namaskaram" {
		t.Errorf("Expected 'namaskaram', got %q", text)
	}
	if language != "ml" {
		t.Errorf("Expected language 'ml', got %q", language)
	}
}

func TestOpenAISpeechToText_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"empty text", http.StatusOK, `{"text":""}`, domain.ErrUnrecognized},
		{"server error", http.StatusServiceUnavailable, `{"error":{"message":"overloaded","type":"server_error"}}`, domain.ErrServiceUnavailable},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, domain.ErrServiceUnavailable},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"auth"}}`, domain.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestWhisper(t, newWhisperServer(t, tt.status, tt.body, nil))

			_, err := o.Recognize(context.Background(), []byte("RIFF"), "en-IN")
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenAISpeechToText_BadRequestIsNotFatal(t *testing.T) {
	o := newTestWhisper(t, newWhisperServer(t, http.StatusBadRequest, `{"error":{"message":"bad file","type":"invalid_request_error"}}`, nil))

	_, err := o.Recognize(context.Background(), []byte("RIFF"), "en-IN")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("Expected a per-chunk error, got %v", err)
	}
}

func TestNewOpenAISpeechToText_RequiresKey(t *testing.T) {
	if _, err := NewOpenAISpeechToText(OpenAIConfig{}, zaptest.NewLogger(t)); err == nil {
		t.Error("Expected error without an API key")
	}
}

func TestWhisperLanguage(t *testing.T) {
	for code, want := range map[string]string{"en-IN": "en", "ta-IN": "ta", "hi": "hi", "": ""} {
		if got := whisperLanguage(code); got != want {
			t.Errorf("whisperLanguage(%q): expected %q, got %q", code, want, got)
		}
	}
}

func TestOpenAISpeechToText_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}

	o, err := NewOpenAISpeechToText(OpenAIConfig{APIKey: apiKey}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create recognizer: %v", err)
	}

	wav, err := audio.EncodeWAV(make([]int16, 16000), 16000)
	if err != nil {
		t.Fatalf("Failed to encode WAV: %v", err)
	}

	_, err = o.Recognize(context.Background(), wav, "en-IN")
	if err != nil && !errors.Is(err, domain.ErrUnrecognized) {
		t.Errorf("Expected success or ErrUnrecognized, got %v", err)
	}
}
