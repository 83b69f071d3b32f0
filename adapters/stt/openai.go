package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
)

var _ repositories.SpeechToText = (*OpenAISpeechToText)(nil)

// OpenAIConfig holds Whisper settings
type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, e.g. for a compatible self-hosted server
	BaseURL string
}

// OpenAISpeechToText implements SpeechToText with the OpenAI transcription API
type OpenAISpeechToText struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAISpeechToText creates a Whisper-backed recognizer
func NewOpenAISpeechToText(config OpenAIConfig, logger *zap.Logger) (*OpenAISpeechToText, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai recognizer")
	}
	if config.Model == "" {
		config.Model = openai.Whisper1
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAISpeechToText{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Model,
		logger: logger,
	}, nil
}

// Recognize sends one WAV chunk. Whisper takes ISO-639-1 codes, so "ml-IN" is sent as "ml".
func (o *OpenAISpeechToText) Recognize(ctx context.Context, audio []byte, languageCode string) (string, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: "chunk.wav",
		Reader:   bytes.NewReader(audio),
		Language: whisperLanguage(languageCode),
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", domain.ErrUnrecognized
	}
	return text, nil
}

func whisperLanguage(code string) string {
	base, _, _ := strings.Cut(code, "-")
	return strings.ToLower(base)
}

// classifyOpenAIError treats auth, quota, server and transport failures as the
// service being unavailable. 4xx request errors stay per-chunk.
func classifyOpenAIError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var statusCode int
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		statusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		statusCode = reqErr.HTTPStatusCode
	default:
		// No HTTP response at all
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	switch {
	case statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden,
		statusCode == http.StatusTooManyRequests,
		statusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	default:
		return fmt.Errorf("failed to transcribe audio: %w", err)
	}
}
