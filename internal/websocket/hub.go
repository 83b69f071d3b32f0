package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/httperr"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/metrics"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB per audio frame
)

var upgrader = websocket.Upgrader{
	// Browsers are authenticated by bearer token, not cookies, so any origin may connect.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Transcriber runs the recognition pipeline for a finished upload
type Transcriber interface {
	Transcribe(ctx context.Context, req usecase.TranscriptionRequest) (*usecase.TranscriptionResult, error)
}

// StreamConfig bounds each streaming upload
type StreamConfig struct {
	MaxAudioBytes   int64
	DefaultDuration time.Duration
}

// Hub maintains the set of active streaming clients.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Closed when Run returns.
	done chan struct{}

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex

	transcriber Transcriber
	config      StreamConfig
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewHub creates a new WebSocket hub. m may be nil.
func NewHub(transcriber Transcriber, config StreamConfig, m *metrics.Metrics, logger *zap.Logger) *Hub {
	if config.MaxAudioBytes <= 0 {
		config.MaxAudioBytes = 50 << 20
	}
	if config.DefaultDuration <= 0 {
		config.DefaultDuration = usecase.DefaultMaxDuration
	}
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		transcriber: transcriber,
		config:      config,
		metrics:     m,
		logger:      logger,
	}
}

// Run starts the hub's main loop. It returns when ctx is done, closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.metrics.StreamOpened()
			h.logger.Info("Client registered", zap.String("clientID", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
				h.metrics.StreamClosed()
				h.logger.Info("Client unregistered", zap.String("clientID", client.id))
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.cancel()
				client.closeSend()
				delete(h.clients, client)
				h.metrics.StreamClosed()
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ActiveStreams returns the number of connected clients
func (h *Hub) ActiveStreams() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type WriteData struct {
	// MessageType is the type of the websocket message.
	// Expect websocket.TextMessage or websocket.BinaryMessage
	Type    int
	Payload []byte
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send   chan WriteData
	closed bool
	sendMu sync.Mutex

	id     string
	logger *zap.Logger

	// ctx is cancelled when the peer goes away
	ctx    context.Context
	cancel context.CancelFunc

	validator *MessageValidator

	mutex   sync.Mutex
	start   *StartMessage
	audio   bytes.Buffer
	running bool
}

// HandleTranscribeStream upgrades the request and serves one streaming transcription
func (h *Hub) HandleTranscribeStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	clientID := uuid.NewString()
	if v, ok := c.Get("client_id").(string); ok && v != "" {
		clientID = v + "/" + clientID
	}

	client := newClient(h, conn, clientID)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	return nil
}

func newClient(h *Hub, conn *websocket.Conn, id string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan WriteData, 256),
		id:        id,
		logger:    h.logger.With(zap.String("clientID", id)),
		ctx:       ctx,
		cancel:    cancel,
		validator: NewMessageValidator(),
	}
}

// readPump pumps messages from the websocket connection to the client.
func (c *Client) readPump() {
	defer func() {
		c.cancel()
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		switch messageType {
		case websocket.TextMessage:
			c.processMessage(message)
		case websocket.BinaryMessage:
			c.processBinaryAudioChunk(message)
		default:
			c.logger.Warn("Received unknown message type", zap.Int("type", messageType))
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.conn.WriteMessage(message.Type, message.Payload); err != nil {
				c.logger.Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processMessage handles control frames
func (c *Client) processMessage(message []byte) {
	msg, err := c.validator.ValidateMessage(message)
	if err != nil {
		c.logger.Warn("Invalid message", zap.Error(err))
		c.fail(http.StatusBadRequest, err.Error())
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch m := msg.(type) {
	case *StartMessage:
		if c.start != nil {
			c.failLocked(http.StatusBadRequest, "stream already started")
			return
		}
		c.start = m
		c.logger.Info("Stream started",
			zap.String("language", m.Language),
			zap.Float64("duration", m.Duration),
			zap.String("filename", m.Filename))

	case *EndMessage:
		if c.start == nil {
			c.failLocked(http.StatusBadRequest, "start message required before end")
			return
		}
		if c.running {
			return
		}
		if c.audio.Len() == 0 {
			c.failLocked(http.StatusBadRequest, "No file uploaded")
			return
		}
		c.running = true
		go c.transcribe(*c.start, c.audio.Bytes())
	}
}

// processBinaryAudioChunk appends audio to the pending upload
func (c *Client) processBinaryAudioChunk(data []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.start == nil {
		c.failLocked(http.StatusBadRequest, "start message required before audio")
		return
	}
	if c.running {
		c.logger.Warn("Ignoring audio received after end")
		return
	}
	if int64(c.audio.Len()+len(data)) > c.hub.config.MaxAudioBytes {
		c.failLocked(http.StatusRequestEntityTooLarge, "Audio exceeds maximum upload size")
		return
	}

	c.audio.Write(data)
	c.logger.Debug("Received binary audio chunk",
		zap.Int("size", len(data)),
		zap.Int("total", c.audio.Len()))
}

// transcribe runs the pipeline and streams progress back to the peer
func (c *Client) transcribe(start StartMessage, data []byte) {
	defer func() { c.hub.remove(c) }()

	duration := c.hub.config.DefaultDuration
	if start.Duration > 0 {
		duration = time.Duration(start.Duration * float64(time.Second))
	}

	filename := start.Filename
	if filename == "" {
		filename = "stream.wav"
	}

	result, err := c.hub.transcriber.Transcribe(c.ctx, usecase.TranscriptionRequest{
		Audio:       data,
		Filename:    filename,
		Language:    start.Language,
		MaxDuration: duration,
		Observer:    c,
	})
	if err != nil {
		if c.ctx.Err() != nil {
			c.logger.Info("Stream cancelled", zap.Error(err))
			return
		}
		status, msg := httperr.Transcription(err)
		c.logger.Warn("Streaming transcription failed", zap.Int("status", status), zap.Error(err))
		c.sendJSON(CreateErrorMessage(status, msg))
		return
	}

	final := TranscriptMessage{
		BaseMessage: BaseMessage{Type: MessageTypeTranscript},
		Transcript:  result.Transcript,
	}
	if result.AutoDetected {
		final.DetectedLanguage = result.LanguageName()
	} else {
		final.Language = result.LanguageName()
	}
	c.sendJSON(final)

	c.logger.Info("Streaming transcription completed",
		zap.Int("chunks", result.Chunks),
		zap.Int("recognized", result.RecognizedChunks))
}

// LanguageDetected implements usecase.ChunkObserver
func (c *Client) LanguageDetected(language entities.Language) {
	c.sendJSON(LanguageDetectedMessage{
		BaseMessage: BaseMessage{Type: MessageTypeLanguageDetected},
		Language:    language.DisplayName,
	})
}

// ChunkProcessed implements usecase.ChunkObserver
func (c *Client) ChunkProcessed(event usecase.ChunkEvent) {
	c.sendJSON(ChunkMessage{
		BaseMessage: BaseMessage{Type: MessageTypeChunk},
		Index:       event.Index,
		Total:       event.Total,
		Status:      string(event.Status),
		Text:        event.Text,
	})
}

// fail sends an error and ends the stream
func (c *Client) fail(status int, message string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.failLocked(status, message)
}

func (c *Client) failLocked(status int, message string) {
	if c.running {
		return
	}
	c.running = true
	c.sendJSON(CreateErrorMessage(status, message))
	go func() { c.hub.remove(c) }()
}

func (c *Client) sendJSON(v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("Failed to marshal message", zap.Error(err))
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- WriteData{Type: websocket.TextMessage, Payload: payload}:
	default:
		c.logger.Warn("Send buffer full, dropping message")
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
