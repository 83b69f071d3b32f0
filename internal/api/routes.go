package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/auth"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/metrics"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/websocket"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/usecase"
)

const serviceName = "speech-recognition"

// Translator runs chunked translation
type Translator interface {
	Translate(ctx context.Context, req usecase.TranslationRequest) (*usecase.TranslationOutcome, error)
}

// Dependencies wires the HTTP layer. Hub, Auth and Metrics may be nil.
type Dependencies struct {
	Transcriber     websocket.Transcriber
	Translator      Translator
	Hub             *websocket.Hub
	Auth            *auth.Authenticator
	Metrics         *metrics.Metrics
	DefaultDuration time.Duration
	MaxUploadBytes  int64
	Logger          *zap.Logger
}

// NewServer creates the echo instance with middleware and routes installed
func NewServer(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(deps.Logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestID", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			deps.Logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(deps.Metrics.Middleware())
	if deps.MaxUploadBytes > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dK", deps.MaxUploadBytes>>10)))
	}

	InitRoutes(e, deps)
	return e
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, deps Dependencies) {
	h := &handlers{
		transcriber:     deps.Transcriber,
		translator:      deps.Translator,
		defaultDuration: deps.DefaultDuration,
		logger:          deps.Logger,
	}
	if h.defaultDuration <= 0 {
		h.defaultDuration = usecase.DefaultMaxDuration
	}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		resp := HealthResponse{Status: "ok", Service: serviceName}
		if deps.Hub != nil {
			resp.ActiveStreams = deps.Hub.ActiveStreams()
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/languages", func(c echo.Context) error {
		return c.JSON(http.StatusOK, LanguagesResponse{
			Auto:      entities.AutoLabel,
			Languages: entities.Candidates(),
		})
	})

	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	var protected []echo.MiddlewareFunc
	if deps.Auth != nil {
		protected = append(protected, deps.Auth.Middleware())
	}

	e.POST("/transcribe", h.transcribe, protected...)
	e.POST("/translate", h.translate, protected...)

	if deps.Hub != nil {
		e.GET("/ws/transcribe", deps.Hub.HandleTranscribeStream, protected...)
	}
}

// errorHandler renders echo errors (bad routes, body limit, panics) in the {"error"} shape
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "Server error: " + err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		} else {
			logger.Error("Unhandled error", zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{Error: msg})
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
