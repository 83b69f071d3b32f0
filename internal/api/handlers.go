package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/httperr"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/websocket"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/usecase"
)

type handlers struct {
	transcriber     websocket.Transcriber
	translator      Translator
	defaultDuration time.Duration
	logger          *zap.Logger
}

// transcribe handles POST /transcribe
func (h *handlers) transcribe(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file uploaded"})
	}

	duration := h.defaultDuration
	if raw := formOrQuery(c, "duration"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Duration must be a positive number of seconds"})
		}
		duration = time.Duration(seconds) * time.Second
	}
	language := formOrQuery(c, "language")

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Audio loading failed: " + err.Error()})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Audio loading failed: " + err.Error()})
	}

	h.logger.Info("Transcription requested",
		zap.String("filename", fileHeader.Filename),
		zap.Int("size", len(data)),
		zap.String("language", language),
		zap.Duration("maxDuration", duration))

	result, err := h.transcriber.Transcribe(c.Request().Context(), usecase.TranscriptionRequest{
		Audio:       data,
		Filename:    fileHeader.Filename,
		Language:    language,
		MaxDuration: duration,
	})
	if err != nil {
		status, msg := httperr.Transcription(err)
		h.logger.Warn("Transcription failed", zap.Int("status", status), zap.Error(err))
		return c.JSON(status, ErrorResponse{Error: msg})
	}

	resp := TranscribeResponse{Transcript: result.Transcript}
	if result.AutoDetected {
		resp.DetectedLanguage = result.LanguageName()
	} else {
		resp.Language = result.LanguageName()
	}
	return c.JSON(http.StatusOK, resp)
}

// translate handles POST /translate
func (h *handlers) translate(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("Failed to bind translate request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	outcome, err := h.translator.Translate(c.Request().Context(), usecase.TranslationRequest{
		Text:           req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		status, msg := httperr.Translation(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Translation failed", zap.Error(err))
		}
		return c.JSON(status, ErrorResponse{Error: msg})
	}

	return c.JSON(http.StatusOK, TranslateResponse{
		OriginalText:   outcome.OriginalText,
		TranslatedText: outcome.TranslatedText,
		SourceLanguage: outcome.SourceLanguage,
		TargetLanguage: outcome.TargetLanguage,
	})
}

// formOrQuery reads a multipart field, falling back to the query string
func formOrQuery(c echo.Context, name string) string {
	if v := strings.TrimSpace(c.FormValue(name)); v != "" {
		return v
	}
	return strings.TrimSpace(c.QueryParam(name))
}
