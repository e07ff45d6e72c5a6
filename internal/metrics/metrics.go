// Package metrics exposes the Prometheus collectors of the API and a
// hit/miss-counting decorator for the result cache.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Olprog59/go-realty/internal/ports"
)

// Metrics holds all Prometheus metric collectors / Contient tous les collecteurs de métriques Prometheus
type Metrics struct {
	// Authentication metrics
	LoginAttempts     *prometheus.CounterVec // Total login attempts by status (success/failure)
	RegistrationTotal prometheus.Counter     // Total registrations
	TokenRefreshes    prometheus.Counter     // Total token pair rotations
	InvalidTokens     prometheus.Counter     // Invalid/expired JWT token attempts

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // Total HTTP requests by method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // HTTP request latency in seconds
	ActiveConnections   prometheus.Gauge         // Current number of active HTTP connections

	// Cache metrics
	CacheHits   prometheus.Counter // Result cache hits
	CacheMisses prometheus.Counter // Result cache misses

	// Security metrics
	RateLimitHits *prometheus.CounterVec // Rate limit violations by endpoint

	// System metrics
	StoreUp prometheus.Gauge // 1 when the document store answers pings
}

// NewMetrics initializes Metrics instance / Initialise une instance Metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_attempts_total",
				Help: "Total number of login attempts by status (success, failure)",
			},
			[]string{"status"},
		),

		RegistrationTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_registrations_total",
				Help: "Total number of account registrations",
			},
		),

		TokenRefreshes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_token_refreshes_total",
				Help: "Total number of token pair rotations",
			},
		),

		InvalidTokens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "security_invalid_tokens_total",
				Help: "Total number of invalid or expired JWT token attempts",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status code",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				// Buckets optimized for API response times: 10ms to 10s
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Current number of active HTTP connections",
			},
		),

		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result cache hits",
			},
		),

		CacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result cache misses",
			},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_rate_limit_hits_total",
				Help: "Total number of rate limit violations by endpoint",
			},
			[]string{"endpoint"},
		),

		StoreUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "store_up",
				Help: "1 when the document store answers pings, 0 otherwise",
			},
		),
	}
}

// RecordLoginAttempt records a login attempt / Enregistre une tentative de connexion
func (m *Metrics) RecordLoginAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	m.LoginAttempts.WithLabelValues(status).Inc()
}

// RecordRegistration increments the registration counter.
func (m *Metrics) RecordRegistration() {
	m.RegistrationTotal.Inc()
}

// RecordTokenRefresh increments the token rotation counter.
func (m *Metrics) RecordTokenRefresh() {
	m.TokenRefreshes.Inc()
}

// RecordInvalidToken increments the invalid token counter.
func (m *Metrics) RecordInvalidToken() {
	m.InvalidTokens.Inc()
}

// RecordHTTPRequest records an HTTP request with method, path, and status code.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(statusCode)).Inc()
}

// RecordHTTPDuration records the duration of an HTTP request.
func (m *Metrics) RecordHTTPDuration(method, path string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementActiveConnections increments the active connections gauge.
func (m *Metrics) IncrementActiveConnections() {
	m.ActiveConnections.Inc()
}

// DecrementActiveConnections decrements the active connections gauge.
func (m *Metrics) DecrementActiveConnections() {
	m.ActiveConnections.Dec()
}

// RecordRateLimitHit records a rate limit violation for a specific endpoint.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetStoreUp updates the document store health gauge.
func (m *Metrics) SetStoreUp(up bool) {
	if up {
		m.StoreUp.Set(1)
		return
	}
	m.StoreUp.Set(0)
}

// statusCodeToString converts HTTP status code to string / Convertit le code de statut HTTP en chaîne
func statusCodeToString(code int) string {
	switch code {
	case 200:
		return "200"
	case 201:
		return "201"
	case 400:
		return "400"
	case 401:
		return "401"
	case 403:
		return "403"
	case 404:
		return "404"
	case 409:
		return "409"
	case 429:
		return "429"
	case 500:
		return "500"
	case 503:
		return "503"
	default:
		if code >= 200 && code < 300 {
			return "2xx"
		} else if code >= 300 && code < 400 {
			return "3xx"
		} else if code >= 400 && code < 500 {
			return "4xx"
		} else if code >= 500 && code < 600 {
			return "5xx"
		}
		return "unknown"
	}
}

// InstrumentedCache wraps a cache and counts hits and misses / Enveloppe un cache et compte les succès et les échecs
type InstrumentedCache struct {
	inner ports.Cache
	m     *Metrics
}

var _ ports.Cache = (*InstrumentedCache)(nil)

// InstrumentCache decorates a cache with hit/miss counters / Décore un cache avec des compteurs de succès/échecs
func InstrumentCache(inner ports.Cache, m *Metrics) *InstrumentedCache {
	return &InstrumentedCache{inner: inner, m: m}
}

func (c *InstrumentedCache) Get(key string) (any, bool) {
	value, ok := c.inner.Get(key)
	if ok {
		c.m.CacheHits.Inc()
	} else {
		c.m.CacheMisses.Inc()
	}
	return value, ok
}

func (c *InstrumentedCache) Set(key string, value any) {
	c.inner.Set(key, value)
}

func (c *InstrumentedCache) Delete(key string) {
	c.inner.Delete(key)
}
