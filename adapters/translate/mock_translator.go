package translate

import (
	"context"
	"fmt"
	"unicode"

	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
)

var _ repositories.Translator = (*MockTranslator)(nil)

// scripts maps each candidate's writing system to its translation code
var scripts = []struct {
	table *unicode.RangeTable
	code  string
}{
	{unicode.Malayalam, "ml"},
	{unicode.Devanagari, "hi"},
	{unicode.Tamil, "ta"},
	{unicode.Kannada, "kn"},
	{unicode.Telugu, "te"},
}

// MockTranslator is a placeholder translator for local development.
// It tags the text with the target language and detects the source by script.
type MockTranslator struct {
	logger *zap.Logger
}

// NewMockTranslator creates a new mock translator
func NewMockTranslator(logger *zap.Logger) *MockTranslator {
	return &MockTranslator{logger: logger}
}

// Translate implements repositories.Translator
func (m *MockTranslator) Translate(ctx context.Context, text, sourceCode, targetCode string) (repositories.TranslationResult, error) {
	if err := ctx.Err(); err != nil {
		return repositories.TranslationResult{}, err
	}

	detected := sourceCode
	if detected == entities.AutoLabel {
		detected = detectScript(text)
	}

	m.logger.Debug("Mock translation",
		zap.String("source", detected),
		zap.String("target", targetCode),
		zap.Int("chars", len(text)))

	return repositories.TranslationResult{
		Text:               fmt.Sprintf("[%s] %s", targetCode, text),
		DetectedSourceCode: detected,
	}, nil
}

func detectScript(text string) string {
	for _, r := range text {
		for _, s := range scripts {
			if unicode.Is(s.table, r) {
				return s.code
			}
		}
	}
	return "en"
}
