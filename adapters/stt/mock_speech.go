package stt

import (
	"context"

	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/adapters/audio"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
)

var _ repositories.SpeechToText = (*MockSpeechToText)(nil)

// mockPhrases are returned by chunk size, largest first
var mockPhrases = map[string][]string{
	"en-IN": {"Hello, this is a longer test recording about today.", "Thank you for listening.", "Hello!"},
	"ml-IN": {"നമസ്കാരം, ഇത് ഒരു പരീക്ഷണ റെക്കോർഡിംഗ് ആണ്.", "കേട്ടതിന് നന്ദി.", "നമസ്കാരം!"},
	"hi-IN": {"नमस्ते, यह आज के बारे में एक लंबी रिकॉर्डिंग है।", "सुनने के लिए धन्यवाद।", "नमस्ते!"},
	"ta-IN": {"வணக்கம், இது ஒரு சோதனை பதிவு.", "கேட்டதற்கு நன்றி.", "வணக்கம்!"},
	"kn-IN": {"ನಮಸ್ಕಾರ, ಇದು ಒಂದು ಪರೀಕ್ಷಾ ರೆಕಾರ್ಡಿಂಗ್.", "ಕೇಳಿದ್ದಕ್ಕೆ ಧನ್ಯವಾದಗಳು.", "ನಮಸ್ಕಾರ!"},
	"te-IN": {"నమస్కారం, ఇది ఒక పరీక్ష రికార్డింగ్.", "విన్నందుకు ధన్యవాదాలు.", "నమస్కారం!"},
}

// MockSpeechToText is a placeholder recognizer for local development.
// It only "hears" one language and reports silent chunks as unrecognized.
type MockSpeechToText struct {
	languageCode string
	logger       *zap.Logger
}

// NewMockSpeechToText creates a mock that recognizes languageCode (default en-IN)
func NewMockSpeechToText(languageCode string, logger *zap.Logger) *MockSpeechToText {
	if _, ok := mockPhrases[languageCode]; !ok {
		languageCode = "en-IN"
	}
	return &MockSpeechToText{
		languageCode: languageCode,
		logger:       logger,
	}
}

// Recognize implements repositories.SpeechToText
func (s *MockSpeechToText) Recognize(ctx context.Context, data []byte, languageCode string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.logger.Debug("Processing mock speech-to-text",
		zap.Int("audioSize", len(data)),
		zap.String("language", languageCode))

	if languageCode != s.languageCode || silent(data) {
		return "", domain.ErrUnrecognized
	}

	// Mock transcription based on audio size
	phrases := mockPhrases[languageCode]
	switch {
	case len(data) > 320000:
		return phrases[0], nil
	case len(data) > 32000:
		return phrases[1], nil
	default:
		return phrases[2], nil
	}
}

func silent(data []byte) bool {
	pcm, err := audio.DecodeWAV(data)
	if err != nil {
		return false
	}
	return pcm.Silent()
}
