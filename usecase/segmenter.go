package usecase

import (
	"time"
	"unicode"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
)

const (
	// DefaultChunkDuration is the length of each recognition chunk
	DefaultChunkDuration = 30 * time.Second
	// DefaultMaxDuration is how much of an upload is transcribed when the caller sets no limit
	DefaultMaxDuration = 600 * time.Second
	// DefaultMaxTextChars bounds a single translate call, counted in code points
	DefaultMaxTextChars = 3000
)

// SegmentAudio truncates audio to maxDuration and cuts it into consecutive
// chunks of chunkDuration. The last chunk may be shorter. Empty audio yields no chunks.
func SegmentAudio(audio entities.Audio, chunkDuration, maxDuration time.Duration) []entities.AudioChunk {
	if chunkDuration <= 0 {
		chunkDuration = DefaultChunkDuration
	}
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}

	total := audio.Duration()
	if total > maxDuration {
		audio = audio.Slice(0, maxDuration)
		total = maxDuration
	}

	var chunks []entities.AudioChunk
	for start := time.Duration(0); start < total; start += chunkDuration {
		end := min(start+chunkDuration, total)
		chunks = append(chunks, entities.AudioChunk{
			Index: len(chunks),
			Start: start,
			End:   end,
			Audio: audio.Slice(start, end),
		})
	}
	return chunks
}

// SegmentText splits text into chunks of at most maxChars code points.
// Each cut prefers the last ". " in the window, then the last whitespace,
// then the hard limit. The cut lands on the match, so a sentence's period
// opens the following chunk.
func SegmentText(text string, maxChars int) []entities.TextChunk {
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return []entities.TextChunk{{Index: 0, Text: text}}
	}

	var chunks []entities.TextChunk
	for len(runes) > 0 {
		if len(runes) <= maxChars {
			chunks = append(chunks, entities.TextChunk{Index: len(chunks), Text: string(runes)})
			break
		}

		cut := textCutIndex(runes[:maxChars])
		chunks = append(chunks, entities.TextChunk{Index: len(chunks), Text: string(runes[:cut])})
		runes = trimLeadingSpace(runes[cut:])
	}
	return chunks
}

// textCutIndex picks the cut position inside window. Position 0 is never
// returned so the loop always advances.
func textCutIndex(window []rune) int {
	for i := len(window) - 2; i > 0; i-- {
		if window[i] == '.' && window[i+1] == ' ' {
			return i
		}
	}
	for i := len(window) - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}
	return len(window)
}

func trimLeadingSpace(runes []rune) []rune {
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return runes[i:]
}
