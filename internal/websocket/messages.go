package websocket

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client to server
const (
	MessageTypeStart MessageType = "start"
	MessageTypeEnd   MessageType = "end"
)

// Server to client
const (
	MessageTypeLanguageDetected MessageType = "language_detected"
	MessageTypeChunk            MessageType = "chunk"
	MessageTypeTranscript       MessageType = "transcript"
	MessageTypeError            MessageType = "error"
)

// BaseMessage defines the common structure for all WebSocket messages
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// StartMessage opens a stream. Audio follows as binary frames.
type StartMessage struct {
	BaseMessage
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"` // seconds
	Filename string  `json:"filename,omitempty"`
}

// EndMessage marks the end of the uploaded audio
type EndMessage struct {
	BaseMessage
}

// LanguageDetectedMessage is sent once probing picks a language
type LanguageDetectedMessage struct {
	BaseMessage
	Language string `json:"language"`
}

// ChunkMessage reports the outcome of one audio chunk
type ChunkMessage struct {
	BaseMessage
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
}

// TranscriptMessage carries the final transcript. Exactly one of
// DetectedLanguage (auto mode) and Language (fixed mode) is set.
type TranscriptMessage struct {
	BaseMessage
	Transcript       string `json:"transcript"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	Language         string `json:"language,omitempty"`
}

// ErrorMessage represents an error response. Status mirrors the HTTP code
// the same failure gets on POST /transcribe.
type ErrorMessage struct {
	BaseMessage
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// MessageValidator provides validation for WebSocket messages
type MessageValidator struct{}

// NewMessageValidator creates a new message validator
func NewMessageValidator() *MessageValidator {
	return &MessageValidator{}
}

// ValidateMessage parses an incoming text frame into *StartMessage or *EndMessage
func (v *MessageValidator) ValidateMessage(messageBytes []byte) (interface{}, error) {
	// First parse as base message to get type
	var base BaseMessage
	if err := json.Unmarshal(messageBytes, &base); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}

	switch base.Type {
	case MessageTypeStart:
		var msg StartMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			return nil, fmt.Errorf("invalid start message: %w", err)
		}
		if err := v.validateStart(&msg); err != nil {
			return nil, err
		}
		return &msg, nil

	case MessageTypeEnd:
		return &EndMessage{BaseMessage: base}, nil

	case "":
		return nil, fmt.Errorf("message missing type field")

	default:
		return nil, fmt.Errorf("unsupported message type: %s", base.Type)
	}
}

func (v *MessageValidator) validateStart(msg *StartMessage) error {
	if msg.Duration < 0 {
		return fmt.Errorf("duration must be positive")
	}
	if strings.ContainsAny(msg.Filename, `/\`) {
		return fmt.Errorf("filename must not contain a path")
	}
	return nil
}

// CreateErrorMessage creates a standardized error message
func CreateErrorMessage(status int, message string) *ErrorMessage {
	return &ErrorMessage{
		BaseMessage: BaseMessage{Type: MessageTypeError},
		Status:      status,
		Error:       message,
	}
}
