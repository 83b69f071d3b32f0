package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/adapters/audio"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/adapters/stt"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/adapters/translate"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/api"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/auth"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/config"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/metrics"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/websocket"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/usecase"
)

// staged uploads older than this are swept by the cleanup service
const tempMaxAge = time.Hour

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Loader{}.Load()
	if err != nil {
		zap.NewExample().Fatal("Invalid configuration", zap.Error(err))
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()

	// Initialize adapters
	decoder := audio.NewFFmpegDecoder(audio.FFmpegConfig{
		BinDir:     cfg.FFmpegBinDir,
		Path:       cfg.FFmpegPath,
		SampleRate: cfg.SpeechSampleRate,
		TempDir:    cfg.TempDir,
	}, logger)

	speechToText, closeSpeech, err := newSpeechToText(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize speech recognizer", zap.Error(err))
	}
	defer closeSpeech()

	translator, err := newTranslator(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize translator", zap.Error(err))
	}

	// Initialize usecase services
	transcriptionService := usecase.NewTranscriptionService(decoder, speechToText, usecase.TranscriptionConfig{
		ChunkDuration: cfg.ChunkDuration(),
		Concurrency:   cfg.RecognitionConcurrency,
	}, m, logger)
	translationService := usecase.NewTranslationService(translator, usecase.TranslationConfig{
		MaxChars:    cfg.TextChunkChars,
		CallTimeout: cfg.TranslateTimeout(),
	}, m, logger)

	// Initialize WebSocket hub for streaming transcription
	hub := websocket.NewHub(transcriptionService, websocket.StreamConfig{
		MaxAudioBytes:   cfg.MaxUploadBytes(),
		DefaultDuration: cfg.DefaultDuration(),
	}, m, logger)
	go hub.Run(ctx)

	cleanup := audio.NewTempCleanupService(cfg.TempDir, tempMaxAge, logger)
	cleanup.Start()
	defer cleanup.Stop()

	var authenticator *auth.Authenticator
	if cfg.AuthEnabled() {
		authenticator, err = auth.NewAuthenticator(cfg.AuthJWTSecret, logger)
		if err != nil {
			logger.Fatal("Failed to initialize authenticator", zap.Error(err))
		}
	} else {
		logger.Warn("AUTH_JWT_SECRET not set, endpoints are unauthenticated")
	}

	e := api.NewServer(api.Dependencies{
		Transcriber:     transcriptionService,
		Translator:      translationService,
		Hub:             hub,
		Auth:            authenticator,
		Metrics:         m,
		DefaultDuration: cfg.DefaultDuration(),
		MaxUploadBytes:  cfg.MaxUploadBytes(),
		Logger:          logger,
	})

	// Graceful shutdown
	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("addr", cfg.Addr()),
		zap.String("recognizer", cfg.Recognizer),
		zap.String("translator", cfg.Translator),
		zap.Bool("auth", cfg.AuthEnabled()))

	<-ctx.Done()
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zapCfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

func newSpeechToText(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories.SpeechToText, func(), error) {
	switch cfg.Recognizer {
	case config.RecognizerOpenAI:
		s, err := stt.NewOpenAISpeechToText(stt.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		}, logger)
		return s, func() {}, err

	case config.RecognizerMock:
		logger.Warn("Using mock speech recognizer", zap.String("language", cfg.MockSpeechLanguage))
		return stt.NewMockSpeechToText(cfg.MockSpeechLanguage, logger), func() {}, nil

	default:
		s, err := stt.NewGoogleSpeechToText(ctx, stt.GoogleConfig{
			CredentialsFile:   cfg.GoogleCredentials,
			EnablePunctuation: true,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("Failed to close speech client", zap.Error(err))
			}
		}, nil
	}
}

func newTranslator(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories.Translator, error) {
	if cfg.Translator == config.TranslatorMock {
		logger.Warn("Using mock translator")
		return translate.NewMockTranslator(logger), nil
	}
	return translate.NewGeminiTranslator(ctx, translate.GeminiConfig{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	}, logger)
}
