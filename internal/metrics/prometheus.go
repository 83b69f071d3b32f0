package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the speech service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Recognition metrics
	AudioChunks    *prometheus.CounterVec
	LanguageProbes *prometheus.CounterVec
	ActiveStreams  prometheus.Gauge

	// Translation metrics
	TranslationChunks prometheus.Counter

	// Remote service metrics
	RemoteCallDuration *prometheus.HistogramVec
}

// NewMetrics creates all metrics on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "speech_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "speech_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
		}, []string{"method", "route"}),

		AudioChunks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "speech_audio_chunks_total",
			Help: "Audio chunks processed, by outcome",
		}, []string{"outcome"}),
		LanguageProbes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "speech_language_probes_total",
			Help: "Language probe results, by chosen language",
		}, []string{"language"}),
		ActiveStreams: factory.NewGauge(prometheus.GaugeOpts{
			Name: "speech_active_streams",
			Help: "Current number of streaming transcription connections",
		}),

		TranslationChunks: factory.NewCounter(prometheus.CounterOpts{
			Name: "speech_translation_chunks_total",
			Help: "Text chunks sent for translation",
		}),

		RemoteCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "speech_remote_call_duration_seconds",
			Help:    "Latency of calls to remote recognition and translation services",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		}, []string{"operation", "outcome"}),
	}
}

// ObserveRemoteCall records the latency of one recognize/translate call
func (m *Metrics) ObserveRemoteCall(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RemoteCallDuration.WithLabelValues(operation, outcome).Observe(time.Since(started).Seconds())
}

// ObserveChunk counts one processed audio chunk
func (m *Metrics) ObserveChunk(outcome string) {
	if m == nil {
		return
	}
	m.AudioChunks.WithLabelValues(outcome).Inc()
}

// ObserveProbe counts the language chosen by a probe ("none" when nothing matched)
func (m *Metrics) ObserveProbe(language string) {
	if m == nil {
		return
	}
	m.LanguageProbes.WithLabelValues(language).Inc()
}

// ObserveTranslationChunk counts one text chunk sent for translation
func (m *Metrics) ObserveTranslationChunk() {
	if m == nil {
		return
	}
	m.TranslationChunks.Inc()
}

// StreamOpened and StreamClosed track live WebSocket streams
func (m *Metrics) StreamOpened() {
	if m == nil {
		return
	}
	m.ActiveStreams.Inc()
}

func (m *Metrics) StreamClosed() {
	if m == nil {
		return
	}
	m.ActiveStreams.Dec()
}

// Middleware records request counts and latency per route
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
