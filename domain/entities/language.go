package entities

import "strings"

// AutoLabel selects probing (recognition) or remote detection (translation).
const AutoLabel = "auto"

// Language is one entry of the fixed candidate-language table.
type Language struct {
	Label           string `json:"label"`
	RecognitionCode string `json:"recognition_code"`
	TranslationCode string `json:"translation_code"`
	DisplayName     string `json:"display_name"`
}

var (
	English   = Language{Label: "english", RecognitionCode: "en-IN", TranslationCode: "en", DisplayName: "English"}
	Malayalam = Language{Label: "malayalam", RecognitionCode: "ml-IN", TranslationCode: "ml", DisplayName: "Malayalam"}
	Hindi     = Language{Label: "hindi", RecognitionCode: "hi-IN", TranslationCode: "hi", DisplayName: "Hindi"}
	Tamil     = Language{Label: "tamil", RecognitionCode: "ta-IN", TranslationCode: "ta", DisplayName: "Tamil"}
	Kannada   = Language{Label: "kannada", RecognitionCode: "kn-IN", TranslationCode: "kn", DisplayName: "Kannada"}
	Telugu    = Language{Label: "telugu", RecognitionCode: "te-IN", TranslationCode: "te", DisplayName: "Telugu"}
)

// candidates is kept in probe order. Never hand out the backing array.
var candidates = [...]Language{English, Malayalam, Hindi, Tamil, Kannada, Telugu}

// Candidates returns the supported languages in probe order.
func Candidates() []Language {
	out := make([]Language, len(candidates))
	copy(out, candidates[:])
	return out
}

// LookupLanguage finds a candidate by its label, case-insensitively.
func LookupLanguage(label string) (Language, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, l := range candidates {
		if l.Label == label {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageByTranslationCode finds a candidate by its translation code ("ml").
func LanguageByTranslationCode(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range candidates {
		if l.TranslationCode == code {
			return l, true
		}
	}
	return Language{}, false
}

// TranslationDisplayName returns the display name for a translation code,
// or the code itself when it is not one of the candidates.
func TranslationDisplayName(code string) string {
	if l, ok := LanguageByTranslationCode(code); ok {
		return l.DisplayName
	}
	return code
}

// LanguageSelector is either a fixed candidate or auto mode.
type LanguageSelector struct {
	auto     bool
	language Language
}

// AutoSelector returns the auto-mode selector.
func AutoSelector() LanguageSelector {
	return LanguageSelector{auto: true}
}

// FixedSelector pins a single language.
func FixedSelector(l Language) LanguageSelector {
	return LanguageSelector{language: l}
}

func (s LanguageSelector) IsAuto() bool { return s.auto }

// Language returns the pinned language. It is the zero value in auto mode.
func (s LanguageSelector) Language() Language { return s.language }

// ParseRecognitionSelector resolves the /transcribe language field.
// Empty and "auto" select probing; unknown labels fall back to English.
func ParseRecognitionSelector(label string) LanguageSelector {
	trimmed := strings.ToLower(strings.TrimSpace(label))
	if trimmed == "" || trimmed == AutoLabel {
		return AutoSelector()
	}
	if l, ok := LookupLanguage(trimmed); ok {
		return FixedSelector(l)
	}
	return FixedSelector(English)
}

// ParseSourceSelector resolves a translation source label. Unknown labels mean auto.
func ParseSourceSelector(label string) LanguageSelector {
	if l, ok := LookupLanguage(label); ok {
		return FixedSelector(l)
	}
	return AutoSelector()
}

// ParseTargetLanguage resolves a translation target label. Unknown labels mean English.
func ParseTargetLanguage(label string) Language {
	if l, ok := LookupLanguage(label); ok {
		return l
	}
	return English
}
