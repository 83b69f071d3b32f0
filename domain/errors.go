package domain

import "errors"

// Error taxonomy shared by the orchestrators, the adapters and the HTTP layer.
// Adapters wrap these with fmt.Errorf("...: %w", ...) and callers classify with errors.Is.
var (
	// ErrDecode means the uploaded audio could not be decoded.
	ErrDecode = errors.New("audio decode failed")
	// ErrDecoderUnavailable means the decoding backend (ffmpeg) is missing.
	ErrDecoderUnavailable = errors.New("audio decoder unavailable")

	// ErrUnrecognized means the recognizer heard no usable speech in a chunk.
	ErrUnrecognized = errors.New("speech not recognized")
	// ErrServiceUnavailable means the remote recognizer could not be reached or refused the request.
	ErrServiceUnavailable = errors.New("speech recognition service unavailable")
	// ErrEmptyTranscript means every chunk was processed but nothing was recognized.
	ErrEmptyTranscript = errors.New("empty transcript")

	// ErrEmptyInput means there was no text to translate.
	ErrEmptyInput = errors.New("no text provided")
	// ErrTranslationFailed means a remote translate call failed.
	ErrTranslationFailed = errors.New("translation failed")
)
