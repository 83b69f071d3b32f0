package repositories

//go:generate mockgen -source=translator.go -destination=mocks/mock_translator.go -package=mocks

import "context"

// Translator abstracts text translation services
type Translator interface {
	// Translate converts text from sourceCode ("auto" or "ml") to targetCode ("en").
	Translate(ctx context.Context, text, sourceCode, targetCode string) (TranslationResult, error)
}

// TranslationResult is the outcome of a single translate call
type TranslationResult struct {
	Text string `json:"text"`
	// DetectedSourceCode is the source language the service reports, e.g. "hi".
	DetectedSourceCode string `json:"detected_source_code"`
}
