package repositories

//go:generate mockgen -source=stt.go -destination=mocks/mock_stt.go -package=mocks

import "context"

// SpeechToText abstracts speech recognition services
type SpeechToText interface {
	// Recognize transcribes one WAV-encoded chunk in the given language code ("ml-IN").
	// It returns domain.ErrUnrecognized when no speech was found and
	// domain.ErrServiceUnavailable when the service cannot be reached.
	Recognize(ctx context.Context, audio []byte, languageCode string) (string, error)
}
