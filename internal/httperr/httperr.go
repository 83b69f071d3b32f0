// Package httperr maps pipeline errors to HTTP status codes and client-facing messages.
package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/usecase"
)

const (
	MsgServiceUnavailable = "Speech recognition service unavailable"
	MsgUnrecognized       = "Speech could not be understood. Try speaking more clearly or check audio quality."
	MsgNoText             = "No text provided for translation"
)

// Transcription classifies an error returned by the transcription pipeline
func Transcription(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrDecoderUnavailable):
		return http.StatusBadRequest, "FFmpeg error: " + cause(err, domain.ErrDecode) + ". Please ensure FFmpeg is properly installed."
	case errors.Is(err, domain.ErrDecode):
		return http.StatusBadRequest, "Audio loading failed: " + cause(err, domain.ErrDecode)
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, MsgServiceUnavailable
	case errors.Is(err, domain.ErrEmptyTranscript), errors.Is(err, domain.ErrUnrecognized):
		return http.StatusBadRequest, MsgUnrecognized
	default:
		return http.StatusInternalServerError, "Server error: " + err.Error()
	}
}

// Translation classifies an error returned by the translation service
func Translation(err error) (int, string) {
	var terr *usecase.TranslationError
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return http.StatusBadRequest, MsgNoText
	case errors.As(err, &terr):
		return http.StatusInternalServerError, "Translation failed: " + terr.Err.Error()
	case errors.Is(err, domain.ErrTranslationFailed):
		return http.StatusInternalServerError, "Translation failed: " + cause(err, domain.ErrTranslationFailed)
	default:
		return http.StatusInternalServerError, "Translation failed: " + err.Error()
	}
}

// cause strips the sentinel's own text from the front of err's message
func cause(err, sentinel error) string {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, sentinel.Error())
	return strings.TrimLeft(msg, ": ")
}
