package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader builds a Config from defaults, an optional YAML file and environment
// variables, in that order. Tests can override Lookup and ReadFile.
type Loader struct {
	Lookup   func(string) (string, bool)
	ReadFile func(string) ([]byte, error)
}

// Load retrieves the configuration and validates it
func (l Loader) Load() (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}

	cfg := Default()

	if path, ok := l.Lookup("CONFIG_FILE"); ok && strings.TrimSpace(path) != "" {
		if err := l.applyFile(strings.TrimSpace(path), &cfg); err != nil {
			return Config{}, err
		}
	}

	overrides := []error{
		overrideInt(l.Lookup, "PORT", &cfg.Port),
		overrideString(l.Lookup, "LOG_LEVEL", &cfg.LogLevel),
		overrideBool(l.Lookup, "LOG_DEVELOPMENT", &cfg.LogDevelopment),
		overrideInt(l.Lookup, "MAX_UPLOAD_MB", &cfg.MaxUploadMB),
		overrideInt(l.Lookup, "DEFAULT_DURATION_SECONDS", &cfg.DefaultDurationSeconds),
		overrideInt(l.Lookup, "CHUNK_DURATION_MS", &cfg.ChunkDurationMS),
		overrideInt(l.Lookup, "TEXT_CHUNK_CHARS", &cfg.TextChunkChars),
		overrideInt(l.Lookup, "TRANSLATE_TIMEOUT_SECONDS", &cfg.TranslateTimeoutSeconds),
		overrideInt(l.Lookup, "RECOGNITION_CONCURRENCY", &cfg.RecognitionConcurrency),
		overrideString(l.Lookup, "RECOGNIZER", &cfg.Recognizer),
		overrideString(l.Lookup, "GOOGLE_APPLICATION_CREDENTIALS", &cfg.GoogleCredentials),
		overrideInt(l.Lookup, "SPEECH_SAMPLE_RATE", &cfg.SpeechSampleRate),
		overrideString(l.Lookup, "OPENAI_API_KEY", &cfg.OpenAIAPIKey),
		overrideString(l.Lookup, "OPENAI_TRANSCRIBE_MODEL", &cfg.OpenAIModel),
		overrideString(l.Lookup, "OPENAI_BASE_URL", &cfg.OpenAIBaseURL),
		overrideString(l.Lookup, "MOCK_SPEECH_LANGUAGE", &cfg.MockSpeechLanguage),
		overrideString(l.Lookup, "TRANSLATOR", &cfg.Translator),
		overrideString(l.Lookup, "GEMINI_API_KEY", &cfg.GeminiAPIKey),
		overrideString(l.Lookup, "GEMINI_MODEL", &cfg.GeminiModel),
		overrideString(l.Lookup, "FFMPEG_PATH", &cfg.FFmpegPath),
		overrideString(l.Lookup, "FFMPEG_BIN_DIR", &cfg.FFmpegBinDir),
		overrideString(l.Lookup, "TEMP_DIR", &cfg.TempDir),
		overrideString(l.Lookup, "AUTH_JWT_SECRET", &cfg.AuthJWTSecret),
	}
	for _, err := range overrides {
		if err != nil {
			return Config{}, err
		}
	}

	cfg.Recognizer = strings.ToLower(cfg.Recognizer)
	cfg.Translator = strings.ToLower(cfg.Translator)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l Loader) applyFile(path string, cfg *Config) error {
	data, err := l.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func overrideString(lookup func(string) (string, bool), key string, target *string) error {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
	return nil
}

func overrideInt(lookup func(string) (string, bool), key string, target *int) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*target = n
	return nil
}

func overrideBool(lookup func(string) (string, bool), key string, target *bool) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	*target = b
	return nil
}
