package api

import "github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"

// TranscribeResponse is the body of a successful POST /transcribe.
// DetectedLanguage is set in auto mode, Language in fixed mode.
type TranscribeResponse struct {
	Transcript       string `json:"transcript"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	Language         string `json:"language,omitempty"`
}

// TranslateRequest represents the request payload for POST /translate
type TranslateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// TranslateResponse represents the response payload for POST /translate
type TranslateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	ActiveStreams int    `json:"active_streams"`
}

// LanguagesResponse lists the supported languages in probe order
type LanguagesResponse struct {
	Auto      string              `json:"auto"`
	Languages []entities.Language `json:"languages"`
}
