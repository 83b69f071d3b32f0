package repositories

//go:generate mockgen -source=audio.go -destination=mocks/mock_audio.go -package=mocks

import (
	"context"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
)

// AudioDecoder turns uploaded bytes into decoded audio
type AudioDecoder interface {
	// Decode uses formatHint (a file name or extension) to pick the input format.
	// Failures wrap domain.ErrDecode, and domain.ErrDecoderUnavailable when the backend is missing.
	Decode(ctx context.Context, data []byte, formatHint string) (entities.Audio, error)
}
