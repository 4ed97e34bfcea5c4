package metrics

import (
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// MetricsCollector owns a private registry so tests can create as many as they like.
type MetricsCollector struct {
	registry         *prometheus.Registry
	transfersTotal   *prometheus.CounterVec
	transferDuration *prometheus.HistogramVec
	mintedMinor      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var _ portssvc.LedgerMetrics = (*MetricsCollector)(nil)

func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,
		transfersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Transfer attempts by outcome",
		}, []string{"outcome"}),
		transferDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfer_duration_seconds",
			Help:      "Time spent in the transfer orchestrator",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		mintedMinor: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "treasury_minted_minor_total",
			Help:      "Minor units minted into the dev treasury",
		}, []string{"currency"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *MetricsCollector) ObserveTransfer(outcome portssvc.TransferOutcome, seconds float64) {
	m.transfersTotal.WithLabelValues(string(outcome)).Inc()
	m.transferDuration.WithLabelValues(string(outcome)).Observe(seconds)
}

func (m *MetricsCollector) ObserveMint(currency string, amountMinor int64) {
	m.mintedMinor.WithLabelValues(currency).Add(float64(amountMinor))
}

// GinMiddleware records request counts and latency labelled by the matched route template.
func (m *MetricsCollector) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
