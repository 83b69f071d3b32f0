package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/metrics"
)

// DefaultTranslateTimeout bounds each remote translate call
const DefaultTranslateTimeout = 15 * time.Second

// TranslationConfig holds translation settings
type TranslationConfig struct {
	MaxChars    int
	CallTimeout time.Duration
}

// TranslationRequest carries the labels exactly as the client sent them
type TranslationRequest struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
}

// TranslationOutcome is a finished translation
type TranslationOutcome struct {
	OriginalText   string
	TranslatedText string
	// SourceLanguage is a display name, or the raw code when it is not a known language
	SourceLanguage string
	TargetLanguage string
	Chunks         int
}

// TranslationError reports the chunk whose remote call failed
type TranslationError struct {
	Chunk int
	Err   error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed on chunk %d: %v", e.Chunk, e.Err)
}

func (e *TranslationError) Unwrap() []error {
	return []error{domain.ErrTranslationFailed, e.Err}
}

// TranslationService splits text and translates it chunk by chunk
type TranslationService struct {
	translator  repositories.Translator
	maxChars    int
	callTimeout time.Duration
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewTranslationService creates a new translation service. m may be nil.
func NewTranslationService(translator repositories.Translator, config TranslationConfig, m *metrics.Metrics, logger *zap.Logger) *TranslationService {
	if config.MaxChars <= 0 {
		config.MaxChars = DefaultMaxTextChars
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = DefaultTranslateTimeout
	}

	return &TranslationService{
		translator:  translator,
		maxChars:    config.MaxChars,
		callTimeout: config.CallTimeout,
		metrics:     m,
		logger:      logger,
	}
}

// Translate translates req.Text. The detected source language is whatever the
// last chunk reported.
func (s *TranslationService) Translate(ctx context.Context, req TranslationRequest) (*TranslationOutcome, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, domain.ErrEmptyInput
	}

	sourceCode := entities.AutoLabel
	if source := entities.ParseSourceSelector(req.SourceLanguage); !source.IsAuto() {
		sourceCode = source.Language().TranslationCode
	}
	target := entities.ParseTargetLanguage(req.TargetLanguage)

	chunks := SegmentText(req.Text, s.maxChars)
	s.logger.Info("Translating text",
		zap.String("source", sourceCode),
		zap.String("target", target.TranslationCode),
		zap.Int("chunks", len(chunks)))

	acc := entities.NewTranslationAccumulator(sourceCode)
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, &TranslationError{Chunk: chunk.Index, Err: err}
		}

		result, err := s.translateChunk(ctx, chunk, sourceCode, target.TranslationCode)
		if err != nil {
			s.logger.Error("Translation call failed", zap.Int("chunk", chunk.Index), zap.Error(err))
			return nil, &TranslationError{Chunk: chunk.Index, Err: err}
		}
		acc.Append(result.Text, result.DetectedSourceCode)
	}

	return &TranslationOutcome{
		OriginalText:   req.Text,
		TranslatedText: acc.Translation(),
		SourceLanguage: entities.TranslationDisplayName(acc.DetectedSource()),
		TargetLanguage: target.DisplayName,
		Chunks:         acc.Len(),
	}, nil
}

func (s *TranslationService) translateChunk(ctx context.Context, chunk entities.TextChunk, sourceCode, targetCode string) (repositories.TranslationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	s.metrics.ObserveTranslationChunk()
	start := time.Now()
	result, err := s.translator.Translate(ctx, chunk.Text, sourceCode, targetCode)
	s.metrics.ObserveRemoteCall("translate", start, err)
	return result, err
}
