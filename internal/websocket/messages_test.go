package websocket

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestMessageValidator_ValidateStart(t *testing.T) {
	validator := NewMessageValidator()

	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{
			name:    "auto language",
			message: `{"type": "start", "language": "Auto-detect", "duration": 90, "filename": "talk.mp3"}`,
		},
		{
			name:    "defaults omitted",
			message: `{"type": "start"}`,
		},
		{
			name:    "negative duration",
			message: `{"type": "start", "duration": -1}`,
			wantErr: true,
		},
		{
			name:    "filename with path",
			message: `{"type": "start", "filename": "../etc/passwd"}`,
			wantErr: true,
		},
		{
			name:    "wrong duration type",
			message: `{"type": "start", "duration": "long"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := validator.ValidateMessage([]byte(tt.message))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if _, ok := msg.(*StartMessage); !ok {
				t.Errorf("Expected *StartMessage, got %T", msg)
			}
		})
	}
}

func TestMessageValidator_ValidateEnd(t *testing.T) {
	msg, err := NewMessageValidator().ValidateMessage([]byte(`{"type": "end"}`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := msg.(*EndMessage); !ok {
		t.Errorf("Expected *EndMessage, got %T", msg)
	}
}

func TestMessageValidator_InvalidJSON(t *testing.T) {
	validator := NewMessageValidator()

	for _, raw := range []string{`{"type": "start"`, `not json`, `[]`} {
		if _, err := validator.ValidateMessage([]byte(raw)); err == nil {
			t.Errorf("Expected error for %q", raw)
		}
	}
}

func TestMessageValidator_UnsupportedMessageType(t *testing.T) {
	validator := NewMessageValidator()

	if _, err := validator.ValidateMessage([]byte(`{"type": "audio_chunk"}`)); err == nil {
		t.Error("Expected error for unsupported type")
	}
	if _, err := validator.ValidateMessage([]byte(`{"language": "Hindi"}`)); err == nil {
		t.Error("Expected error for missing type")
	}
}

func TestCreateErrorMessage(t *testing.T) {
	errorMsg := CreateErrorMessage(http.StatusServiceUnavailable, "unavailable")

	payload, err := json.Marshal(errorMsg)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	want := `{"type":"error","status":503,"error":"unavailable"}`
	if string(payload) != want {
		t.Errorf("Expected %s, got %s", want, payload)
	}
}

func TestTranscriptMessage_Serialization(t *testing.T) {
	tests := []struct {
		name string
		msg  TranscriptMessage
		want string
	}{
		{
			name: "auto mode",
			msg: TranscriptMessage{
				BaseMessage:      BaseMessage{Type: MessageTypeTranscript},
				Transcript:       "namaste",
				DetectedLanguage: "Hindi",
			},
			want: `{"type":"transcript","transcript":"namaste","detected_language":"Hindi"}`,
		},
		{
			name: "fixed mode",
			msg: TranscriptMessage{
				BaseMessage: BaseMessage{Type: MessageTypeTranscript},
				Transcript:  "hello",
				Language:    "English",
			},
			want: `{"type":"transcript","transcript":"hello","language":"English"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(tt.msg)
			if err != nil {
				t.Fatalf("Failed to marshal: %v", err)
			}
			if string(payload) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, payload)
			}
		})
	}
}
