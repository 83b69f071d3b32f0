package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/metrics"
)

// RecognitionState is the lifecycle of one transcription
type RecognitionState int

const (
	StateNotStarted RecognitionState = iota
	StateProbing
	StateProcessing
	StateDone
)

func (s RecognitionState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateProbing:
		return "probing"
	case StateProcessing:
		return "processing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ChunkStatus is the outcome of recognizing one chunk
type ChunkStatus string

const (
	ChunkRecognized   ChunkStatus = "recognized"
	ChunkUnrecognized ChunkStatus = "unrecognized"
	ChunkFailed       ChunkStatus = "failed"
)

// ChunkEvent reports one processed chunk
type ChunkEvent struct {
	Index    int
	Total    int
	Language entities.Language
	Status   ChunkStatus
	Text     string
}

// ChunkObserver receives progress while a transcription runs. Calls are
// serialized but, with concurrency above one, chunk events may arrive out of index order.
type ChunkObserver interface {
	LanguageDetected(language entities.Language)
	ChunkProcessed(event ChunkEvent)
}

// TranscriptionConfig holds orchestration settings
type TranscriptionConfig struct {
	ChunkDuration time.Duration
	// Concurrency bounds in-flight recognize calls. 1 keeps chunks strictly sequential.
	Concurrency int
}

// TranscriptionRequest is one upload to transcribe
type TranscriptionRequest struct {
	Audio    []byte
	Filename string
	// Language is the requested label as sent by the client ("auto", "hindi", ...)
	Language    string
	MaxDuration time.Duration
	Observer    ChunkObserver
}

// TranscriptionResult is a finished transcript
type TranscriptionResult struct {
	Transcript string
	// AutoDetected is true when the language came from probing
	AutoDetected bool
	Language     entities.Language
	// RequestedLanguage echoes the label the client sent
	RequestedLanguage string
	Chunks            int
	RecognizedChunks  int
}

// LanguageName is what the API reports: the detected display name in auto
// mode, otherwise the label exactly as the client sent it.
func (r *TranscriptionResult) LanguageName() string {
	if r.AutoDetected {
		return r.Language.DisplayName
	}
	return r.RequestedLanguage
}

// TranscriptionService decodes, segments and recognizes uploaded audio
type TranscriptionService struct {
	decoder       repositories.AudioDecoder
	stt           repositories.SpeechToText
	prober        *LanguageProber
	chunkDuration time.Duration
	concurrency   int
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewTranscriptionService creates a new transcription service. m may be nil.
func NewTranscriptionService(
	decoder repositories.AudioDecoder,
	stt repositories.SpeechToText,
	config TranscriptionConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *TranscriptionService {
	if config.ChunkDuration <= 0 {
		config.ChunkDuration = DefaultChunkDuration
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	return &TranscriptionService{
		decoder:       decoder,
		stt:           stt,
		prober:        NewLanguageProber(stt, m, logger),
		chunkDuration: config.ChunkDuration,
		concurrency:   config.Concurrency,
		metrics:       m,
		logger:        logger,
	}
}

// Transcribe decodes the upload and runs recognition over its chunks
func (s *TranscriptionService) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResult, error) {
	audio, err := s.decoder.Decode(ctx, req.Audio, req.Filename)
	if err != nil {
		if !errors.Is(err, domain.ErrDecode) {
			err = fmt.Errorf("%w: %w", domain.ErrDecode, err)
		}
		return nil, err
	}

	chunks := SegmentAudio(audio, s.chunkDuration, req.MaxDuration)
	s.logger.Info("Audio segmented",
		zap.String("filename", req.Filename),
		zap.Duration("duration", audio.Duration()),
		zap.Int("chunks", len(chunks)))

	selector := entities.ParseRecognitionSelector(req.Language)
	return s.Recognize(ctx, chunks, selector, req.Language, req.Observer)
}

// Recognize runs the probe and per-chunk recognition. requestedLabel is echoed
// back in fixed mode. observer may be nil.
func (s *TranscriptionService) Recognize(
	ctx context.Context,
	chunks []entities.AudioChunk,
	selector entities.LanguageSelector,
	requestedLabel string,
	observer ChunkObserver,
) (*TranscriptionResult, error) {
	run := &recognitionRun{
		service:  s,
		observer: observer,
		total:    len(chunks),
	}
	return run.execute(ctx, chunks, selector, requestedLabel)
}

// recognitionRun holds the per-request state
type recognitionRun struct {
	service  *TranscriptionService
	observer ChunkObserver
	total    int

	state      RecognitionState
	language   entities.Language
	transcript entities.TranscriptAccumulator
	recognized int

	mu sync.Mutex
}

func (r *recognitionRun) execute(
	ctx context.Context,
	chunks []entities.AudioChunk,
	selector entities.LanguageSelector,
	requestedLabel string,
) (*TranscriptionResult, error) {
	remaining := chunks

	if selector.IsAuto() {
		r.transition(StateProbing)
		r.language = entities.English
		if len(chunks) > 0 {
			lang, text := r.service.prober.Probe(ctx, chunks[0], entities.Candidates())
			r.language = lang
			r.notifyLanguage(lang)

			status := ChunkUnrecognized
			if strings.TrimSpace(text) != "" {
				status = ChunkRecognized
				r.transcript.Append(text)
				r.recognized++
			}
			r.report(chunks[0], status, text)
			remaining = chunks[1:]
		}
	} else {
		r.language = selector.Language()
	}

	r.transition(StateProcessing)
	if err := r.process(ctx, remaining); err != nil {
		return nil, err
	}
	r.transition(StateDone)

	if r.transcript.Empty() {
		return nil, domain.ErrEmptyTranscript
	}

	return &TranscriptionResult{
		Transcript:        r.transcript.Transcript(),
		AutoDetected:      selector.IsAuto(),
		Language:          r.language,
		RequestedLanguage: requestedLabel,
		Chunks:            r.total,
		RecognizedChunks:  r.recognized,
	}, nil
}

// process recognizes chunks with at most concurrency calls in flight. The
// first service-unavailable error cancels the rest; results keep index order.
func (r *recognitionRun) process(ctx context.Context, chunks []entities.AudioChunk) error {
	results := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.service.concurrency)

	for i, chunk := range chunks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			text, err := r.recognizeChunk(gctx, chunk)
			if err != nil {
				return err
			}
			results[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, text := range results {
		if text != "" {
			r.transcript.Append(text)
			r.recognized++
		}
	}
	return nil
}

// recognizeChunk returns an error only when the whole request must abort
func (r *recognitionRun) recognizeChunk(ctx context.Context, chunk entities.AudioChunk) (string, error) {
	logger := r.service.logger.With(zap.Int("chunk", chunk.Index), zap.String("language", r.language.RecognitionCode))

	wav, err := chunk.Audio.Export("wav")
	if err != nil {
		logger.Warn("Failed to export chunk", zap.Error(err))
		r.report(chunk, ChunkFailed, "")
		return "", nil
	}

	start := time.Now()
	text, err := r.service.stt.Recognize(ctx, wav, r.language.RecognitionCode)
	r.service.metrics.ObserveRemoteCall("recognize", start, err)

	switch {
	case err == nil && strings.TrimSpace(text) != "":
		logger.Debug("Chunk recognized", zap.Int("chars", len(text)))
		r.report(chunk, ChunkRecognized, text)
		return text, nil
	case err == nil, errors.Is(err, domain.ErrUnrecognized):
		logger.Debug("Chunk not understood")
		r.report(chunk, ChunkUnrecognized, "")
		return "", nil
	case errors.Is(err, domain.ErrServiceUnavailable):
		logger.Error("Speech service unavailable, aborting", zap.Error(err))
		r.report(chunk, ChunkFailed, "")
		return "", fmt.Errorf("chunk %d: %w", chunk.Index, err)
	default:
		logger.Warn("Chunk recognition failed, skipping", zap.Error(err))
		r.report(chunk, ChunkFailed, "")
		return "", nil
	}
}

func (r *recognitionRun) transition(next RecognitionState) {
	r.service.logger.Debug("Recognition state changed",
		zap.Stringer("from", r.state),
		zap.Stringer("to", next))
	r.state = next
}

func (r *recognitionRun) notifyLanguage(lang entities.Language) {
	if r.observer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer.LanguageDetected(lang)
}

func (r *recognitionRun) report(chunk entities.AudioChunk, status ChunkStatus, text string) {
	r.service.metrics.ObserveChunk(string(status))
	if r.observer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer.ChunkProcessed(ChunkEvent{
		Index:    chunk.Index,
		Total:    r.total,
		Language: r.language,
		Status:   status,
		Text:     text,
	})
}
