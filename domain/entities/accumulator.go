package entities

import "strings"

// TranscriptAccumulator collects per-chunk recognition results in chunk order.
type TranscriptAccumulator struct {
	parts []string
}

// Append adds a recognized piece. Empty pieces are ignored.
func (a *TranscriptAccumulator) Append(text string) {
	if text == "" {
		return
	}
	a.parts = append(a.parts, text)
}

func (a *TranscriptAccumulator) Len() int { return len(a.parts) }

// Empty reports whether the joined transcript would be blank.
func (a *TranscriptAccumulator) Empty() bool {
	return a.Transcript() == ""
}

// Transcript joins the parts with single spaces and trims the result.
func (a *TranscriptAccumulator) Transcript() string {
	return strings.TrimSpace(strings.Join(a.parts, " "))
}

// TranslationAccumulator collects translated pieces and the most recently
// reported source language.
type TranslationAccumulator struct {
	parts          []string
	detectedSource string
}

// NewTranslationAccumulator starts with the requested source code ("auto" or a candidate code).
func NewTranslationAccumulator(sourceCode string) *TranslationAccumulator {
	return &TranslationAccumulator{detectedSource: sourceCode}
}

// Append records one translated chunk. A non-empty detected code overwrites the previous one.
func (a *TranslationAccumulator) Append(text, detectedSource string) {
	a.parts = append(a.parts, text)
	if detectedSource != "" {
		a.detectedSource = detectedSource
	}
}

func (a *TranslationAccumulator) Len() int { return len(a.parts) }

// DetectedSource is the source code reported by the last call.
func (a *TranslationAccumulator) DetectedSource() string { return a.detectedSource }

// Translation joins the parts with single spaces.
func (a *TranslationAccumulator) Translation() string {
	return strings.Join(a.parts, " ")
}
