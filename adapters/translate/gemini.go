package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.1
	defaultMaxTokens   = 8192
)

const translatePrompt = `Translate the text between the <text> tags from %s into %s.
Keep names, numbers and punctuation. Do not add explanations.
Reply with JSON: {"translated_text": "...", "detected_source_language": "<ISO-639-1 code of the input>"}.
<text>
%s
</text>`

var _ repositories.Translator = (*GeminiTranslator)(nil)

// contentGenerator is the part of genai.Models we use
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig holds Gemini translation settings
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int
}

// ValidateGeminiConfig validates the GeminiConfig
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for the gemini translator")
	}
	if config.Temperature < 0 || config.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %f", config.Temperature)
	}
	if config.MaxOutputTokens < 0 {
		return fmt.Errorf("maxOutputTokens must be positive, got %d", config.MaxOutputTokens)
	}
	return nil
}

// GeminiTranslator implements Translator using Google's Gemini API
type GeminiTranslator struct {
	models          contentGenerator
	logger          *zap.Logger
	model           string
	temperature     float32
	maxOutputTokens int
}

// geminiTranslation is the JSON shape the model is asked to reply with
type geminiTranslation struct {
	TranslatedText         string `json:"translated_text"`
	DetectedSourceLanguage string `json:"detected_source_language"`
}

// NewGeminiTranslator creates a new Gemini translator
func NewGeminiTranslator(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiTranslator, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newGeminiTranslator(client.Models, config, logger), nil
}

func newGeminiTranslator(models contentGenerator, config GeminiConfig, logger *zap.Logger) *GeminiTranslator {
	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = float32(defaultTemperature)
		logger.Info("Using default temperature", zap.Float32("temperature", temperature))
	}

	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = defaultMaxTokens
		logger.Info("Using default maxOutputTokens", zap.Int("maxOutputTokens", maxOutputTokens))
	}

	return &GeminiTranslator{
		models:          models,
		logger:          logger,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}
}

// Translate implements repositories.Translator. sourceCode may be "auto".
func (g *GeminiTranslator) Translate(ctx context.Context, text, sourceCode, targetCode string) (repositories.TranslationResult, error) {
	source := "the language it is written in"
	if sourceCode != entities.AutoLabel {
		source = describeLanguage(sourceCode)
	}
	prompt := fmt.Sprintf(translatePrompt, source, describeLanguage(targetCode), text)

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		MaxOutputTokens:  int32(g.maxOutputTokens),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"translated_text":          {Type: genai.TypeString},
				"detected_source_language": {Type: genai.TypeString},
			},
			Required: []string{"translated_text", "detected_source_language"},
		},
	}

	response, err := g.models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, config)
	if err != nil {
		return repositories.TranslationResult{}, fmt.Errorf("failed to generate translation: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil || len(response.Candidates[0].Content.Parts) == 0 {
		return repositories.TranslationResult{}, fmt.Errorf("no content generated")
	}

	// Extract text from the response
	var raw string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			raw += part.Text
		}
	}

	parsed, err := parseGeminiTranslation(raw)
	if err != nil {
		return repositories.TranslationResult{}, err
	}

	detected := strings.ToLower(strings.TrimSpace(parsed.DetectedSourceLanguage))
	if detected == "" && sourceCode != entities.AutoLabel {
		detected = sourceCode
	}

	g.logger.Debug("Chunk translated",
		zap.String("source", sourceCode),
		zap.String("detected", detected),
		zap.String("target", targetCode),
		zap.Int("chars", len(text)))

	return repositories.TranslationResult{
		Text:               parsed.TranslatedText,
		DetectedSourceCode: detected,
	}, nil
}

// parseGeminiTranslation accepts the JSON reply, with or without a markdown fence
func parseGeminiTranslation(raw string) (geminiTranslation, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed geminiTranslation
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return geminiTranslation{}, fmt.Errorf("failed to parse translation response: %w", err)
	}
	if strings.TrimSpace(parsed.TranslatedText) == "" {
		return geminiTranslation{}, fmt.Errorf("empty translation in response")
	}
	return parsed, nil
}

func describeLanguage(code string) string {
	if l, ok := entities.LanguageByTranslationCode(code); ok {
		return fmt.Sprintf("%s (%s)", l.DisplayName, l.TranslationCode)
	}
	return code
}
