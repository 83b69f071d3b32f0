package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultPort                    = 8080
	DefaultLogLevel                = "info"
	DefaultMaxUploadMB             = 50
	DefaultDurationSeconds         = 600
	DefaultChunkDurationMS         = 30000
	DefaultTextChunkChars          = 3000
	DefaultTranslateTimeoutSeconds = 15
	DefaultRecognitionConcurrency  = 1
	DefaultSpeechSampleRate        = 16000
	DefaultOpenAIModel             = "whisper-1"
	DefaultGeminiModel             = "gemini-2.0-flash"
	DefaultMockLanguage            = "en-IN"

	RecognizerGoogle = "google"
	RecognizerOpenAI = "openai"
	RecognizerMock   = "mock"

	TranslatorGemini = "gemini"
	TranslatorMock   = "mock"
)

// Config holds service settings. Zero values are filled from the defaults above.
type Config struct {
	Port           int    `yaml:"port"`
	LogLevel       string `yaml:"log_level"`
	LogDevelopment bool   `yaml:"log_development"`

	MaxUploadMB             int `yaml:"max_upload_mb"`
	DefaultDurationSeconds  int `yaml:"default_duration_seconds"`
	ChunkDurationMS         int `yaml:"chunk_duration_ms"`
	TextChunkChars          int `yaml:"text_chunk_chars"`
	TranslateTimeoutSeconds int `yaml:"translate_timeout_seconds"`
	RecognitionConcurrency  int `yaml:"recognition_concurrency"`

	Recognizer         string `yaml:"recognizer"`
	GoogleCredentials  string `yaml:"google_application_credentials"`
	SpeechSampleRate   int    `yaml:"speech_sample_rate"`
	OpenAIAPIKey       string `yaml:"openai_api_key"`
	OpenAIModel        string `yaml:"openai_transcribe_model"`
	OpenAIBaseURL      string `yaml:"openai_base_url"`
	MockSpeechLanguage string `yaml:"mock_speech_language"`

	Translator   string `yaml:"translator"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	FFmpegPath   string `yaml:"ffmpeg_path"`
	FFmpegBinDir string `yaml:"ffmpeg_bin_dir"`
	TempDir      string `yaml:"temp_dir"`

	AuthJWTSecret string `yaml:"auth_jwt_secret"`
}

// Default returns a Config with every default applied
func Default() Config {
	return Config{
		Port:                    DefaultPort,
		LogLevel:                DefaultLogLevel,
		MaxUploadMB:             DefaultMaxUploadMB,
		DefaultDurationSeconds:  DefaultDurationSeconds,
		ChunkDurationMS:         DefaultChunkDurationMS,
		TextChunkChars:          DefaultTextChunkChars,
		TranslateTimeoutSeconds: DefaultTranslateTimeoutSeconds,
		RecognitionConcurrency:  DefaultRecognitionConcurrency,
		Recognizer:              RecognizerGoogle,
		SpeechSampleRate:        DefaultSpeechSampleRate,
		OpenAIModel:             DefaultOpenAIModel,
		MockSpeechLanguage:      DefaultMockLanguage,
		Translator:              TranslatorGemini,
		GeminiModel:             DefaultGeminiModel,
	}
}

// Validate ensures the configuration is usable
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port must be between 1 and 65535, got %d", c.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}

	positive := map[string]int{
		"max_upload_mb":             c.MaxUploadMB,
		"default_duration_seconds":  c.DefaultDurationSeconds,
		"chunk_duration_ms":         c.ChunkDurationMS,
		"text_chunk_chars":          c.TextChunkChars,
		"translate_timeout_seconds": c.TranslateTimeoutSeconds,
		"recognition_concurrency":   c.RecognitionConcurrency,
		"speech_sample_rate":        c.SpeechSampleRate,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", name, v)
		}
	}

	switch c.Recognizer {
	case RecognizerGoogle, RecognizerMock:
	case RecognizerOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("config: openai_api_key is required when recognizer is %q", RecognizerOpenAI)
		}
	default:
		return fmt.Errorf("config: unknown recognizer %q", c.Recognizer)
	}

	switch c.Translator {
	case TranslatorMock:
	case TranslatorGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config: gemini_api_key is required when translator is %q", TranslatorGemini)
		}
	default:
		return fmt.Errorf("config: unknown translator %q", c.Translator)
	}

	return nil
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

func (c Config) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationSeconds) * time.Second
}

func (c Config) ChunkDuration() time.Duration {
	return time.Duration(c.ChunkDurationMS) * time.Millisecond
}

func (c Config) TranslateTimeout() time.Duration {
	return time.Duration(c.TranslateTimeoutSeconds) * time.Second
}

// AuthEnabled reports whether bearer tokens are required
func (c Config) AuthEnabled() bool { return c.AuthJWTSecret != "" }
