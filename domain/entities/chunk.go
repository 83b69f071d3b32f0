package entities

import (
	"fmt"
	"time"
)

// Audio is decoded audio that can be cut and re-encoded.
type Audio interface {
	Duration() time.Duration
	// Slice returns the audio between start and end. Bounds are clamped.
	Slice(start, end time.Duration) Audio
	// Export encodes the audio in the given container format ("wav").
	Export(format string) ([]byte, error)
}

// AudioChunk is one fixed-duration segment of an upload.
type AudioChunk struct {
	Index int
	Start time.Duration
	End   time.Duration
	Audio Audio
}

// Duration returns the length of this chunk.
func (c AudioChunk) Duration() time.Duration {
	return c.End - c.Start
}

func (c AudioChunk) String() string {
	return fmt.Sprintf("chunk %d: %s-%s", c.Index, c.Start, c.End)
}

// TextChunk is one bounded-length piece of text submitted for translation.
type TextChunk struct {
	Index int
	Text  string
}
