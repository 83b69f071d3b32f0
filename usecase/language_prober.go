package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/metrics"
)

// LanguageProber picks the spoken language of an upload by trying each
// candidate on the first chunk until one yields text
type LanguageProber struct {
	stt     repositories.SpeechToText
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewLanguageProber creates a new prober. m may be nil.
func NewLanguageProber(stt repositories.SpeechToText, m *metrics.Metrics, logger *zap.Logger) *LanguageProber {
	return &LanguageProber{
		stt:     stt,
		metrics: m,
		logger:  logger,
	}
}

// Probe tries candidates in order and returns the first language that produces
// non-empty text, along with that text. Every recognition error is treated as
// "not this language". When nothing matches it returns English and empty text.
func (p *LanguageProber) Probe(ctx context.Context, chunk entities.AudioChunk, candidates []entities.Language) (entities.Language, string) {
	wav, err := chunk.Audio.Export("wav")
	if err != nil {
		p.logger.Warn("Failed to export probe chunk", zap.Int("chunk", chunk.Index), zap.Error(err))
		p.metrics.ObserveProbe("none")
		return entities.English, ""
	}

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		text, err := p.stt.Recognize(ctx, wav, candidate.RecognitionCode)
		p.metrics.ObserveRemoteCall("probe", start, err)
		if err != nil {
			p.logger.Debug("Probe attempt failed",
				zap.String("language", candidate.RecognitionCode),
				zap.Error(err))
			continue
		}

		if strings.TrimSpace(text) != "" {
			p.logger.Info("Language detected", zap.String("language", candidate.DisplayName))
			p.metrics.ObserveProbe(candidate.DisplayName)
			return candidate, text
		}
	}

	p.logger.Info("No candidate language matched, defaulting to English")
	p.metrics.ObserveProbe("none")
	return entities.English, ""
}
