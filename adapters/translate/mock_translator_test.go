package translate

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestMockTranslator(t *testing.T) {
	m := NewMockTranslator(zaptest.NewLogger(t))

	tests := []struct {
		text, source, wantDetected string
	}{
		{"നന്ദി", "auto", "ml"},
		{"धन्यवाद", "auto", "hi"},
		{"நன்றி", "auto", "ta"},
		{"ಧನ್ಯವಾದ", "auto", "kn"},
		{"ధన్యవాదాలు", "auto", "te"},
		{"thanks", "auto", "en"},
		{"thanks", "hi", "hi"},
	}

	for _, tt := range tests {
		result, err := m.Translate(context.Background(), tt.text, tt.source, "en")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result.DetectedSourceCode != tt.wantDetected {
			t.Errorf("%q: expected %s, got %s", tt.text, tt.wantDetected, result.DetectedSourceCode)
		}
		if result.Text != "[en] "+tt.text {
			t.Errorf("Expected tagged text, got %q", result.Text)
		}
	}
}
