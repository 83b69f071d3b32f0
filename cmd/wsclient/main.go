// Command wsclient streams an audio file to /ws/transcribe and prints progress.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
)

// frameSize stays under the server's per-frame read limit
const frameSize = 256 * 1024

type serverMessage struct {
	Type             string `json:"type"`
	Language         string `json:"language"`
	Index            int    `json:"index"`
	Total            int    `json:"total"`
	Status           any    `json:"status"`
	Text             string `json:"text"`
	Transcript       string `json:"transcript"`
	DetectedLanguage string `json:"detected_language"`
	Error            string `json:"error"`
}

func main() {
	server := flag.String("server", "localhost:8080", "server host:port")
	file := flag.String("file", "", "audio file to transcribe")
	language := flag.String("language", "auto", "language label or auto")
	duration := flag.Float64("duration", 0, "seconds of audio to process (0 = server default)")
	token := flag.String("token", os.Getenv("SPEECH_TOKEN"), "bearer token when auth is enabled")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read audio: %v", err)
	}

	wsURL := url.URL{Scheme: "ws", Host: *server, Path: "/ws/transcribe"}
	header := http.Header{}
	if *token != "" {
		header.Set("Authorization", "Bearer "+*token)
	}

	fmt.Printf("Connecting to: %s\n", wsURL.String())
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL.String(), header)
	if err != nil {
		if resp != nil {
			log.Fatalf("WebSocket connection failed with status %d: %v", resp.StatusCode, err)
		}
		log.Fatalf("WebSocket connection failed: %v", err)
	}
	defer conn.Close()

	start := map[string]interface{}{
		"type":     "start",
		"language": *language,
		"filename": filepath.Base(*file),
	}
	if *duration > 0 {
		start["duration"] = *duration
	}
	if err := conn.WriteJSON(start); err != nil {
		log.Fatalf("Failed to send start: %v", err)
	}

	for off := 0; off < len(data); off += frameSize {
		end := off + frameSize
		if end > len(data) {
			end = len(data)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, data[off:end]); err != nil {
			log.Fatalf("Failed to send audio: %v", err)
		}
	}
	if err := conn.WriteJSON(map[string]string{"type": "end"}); err != nil {
		log.Fatalf("Failed to send end: %v", err)
	}
	fmt.Printf("Sent %d bytes, waiting for results...\n", len(data))

	for {
		conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("Failed to read response: %v", err)
		}

		var msg serverMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Fatalf("Unexpected message %s: %v", raw, err)
		}

		switch msg.Type {
		case "language_detected":
			fmt.Printf("Detected language: %s\n", msg.Language)
		case "chunk":
			fmt.Printf("Chunk %d/%d %v %s\n", msg.Index+1, msg.Total, msg.Status, msg.Text)
		case "transcript":
			lang := msg.DetectedLanguage
			if lang == "" {
				lang = msg.Language
			}
			fmt.Printf("Transcript (%s):\n%s\n", lang, msg.Transcript)
			return
		case "error":
			fmt.Fprintf(os.Stderr, "Error (%v): %s\n", msg.Status, msg.Error)
			os.Exit(1)
		}
	}
}
