// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Resolution metrics
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration prometheus.Histogram

	// Session pass metrics
	PassesTotal    *prometheus.CounterVec
	PassDuration   prometheus.Histogram
	TokensResolved prometheus.Counter

	// RPC metrics
	RPCCallLatency *prometheus.HistogramVec

	// Gateway metrics
	GatewayFetches *prometheus.CounterVec

	// Registry metrics
	RegistryEntries prometheus.Gauge

	// Watch metrics
	AccountNotifications prometheus.Counter
	WatchedAccounts      prometheus.Gauge

	// Health metrics
	LastPassTimestamp prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_wallet_metadata"
	}

	return &Metrics{
		// Resolution metrics
		ResolutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of mint resolutions by source",
		}, []string{"source"}),
		ResolutionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolution_duration_seconds",
			Help:      "Per-mint resolution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		// Session pass metrics
		PassesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "passes_total",
			Help:      "Total number of resolution passes by status",
		}, []string{"status"}),
		PassDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "pass_duration_seconds",
			Help:      "Full resolution pass duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		TokensResolved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "tokens_resolved_total",
			Help:      "Total number of tokens resolved across all passes",
		}),

		// RPC metrics
		RPCCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_call_latency_seconds",
			Help:      "Solana RPC call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		// Gateway metrics
		GatewayFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "fetches_total",
			Help:      "Total number of off-chain document fetches by outcome",
		}, []string{"outcome"}),

		// Registry metrics
		RegistryEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "entries",
			Help:      "Number of entries in the loaded registry table",
		}),

		// Watch metrics
		AccountNotifications: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "watch",
			Name:      "account_notifications_total",
			Help:      "Total number of account change notifications received",
		}),
		WatchedAccounts: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "watch",
			Name:      "accounts",
			Help:      "Number of accounts currently watched",
		}),

		// Health metrics
		LastPassTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_pass_timestamp",
			Help:      "Unix timestamp of last completed resolution pass",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordResolution increments the resolution counter for a source.
func RecordResolution(source string) {
	DefaultMetrics.ResolutionsTotal.WithLabelValues(source).Inc()
}

// RecordPass records a completed resolution pass.
func RecordPass(status string, durationSeconds float64, tokens int) {
	DefaultMetrics.PassesTotal.WithLabelValues(status).Inc()
	DefaultMetrics.PassDuration.Observe(durationSeconds)
	DefaultMetrics.TokensResolved.Add(float64(tokens))
	DefaultMetrics.LastPassTimestamp.Set(float64(time.Now().Unix()))
}

// RecordRPCLatency records RPC call latency.
func RecordRPCLatency(method string, seconds float64) {
	DefaultMetrics.RPCCallLatency.WithLabelValues(method).Observe(seconds)
}

// RecordGatewayFetch records an off-chain document fetch outcome.
func RecordGatewayFetch(outcome string) {
	DefaultMetrics.GatewayFetches.WithLabelValues(outcome).Inc()
}

// SetRegistryEntries updates the loaded registry table size.
func SetRegistryEntries(n int) {
	DefaultMetrics.RegistryEntries.Set(float64(n))
}

// RecordAccountNotification increments the account notification counter.
func RecordAccountNotification() {
	DefaultMetrics.AccountNotifications.Inc()
}

// UpdateWatchedAccounts updates the watched accounts gauge.
func UpdateWatchedAccounts(n int) {
	DefaultMetrics.WatchedAccounts.Set(float64(n))
}
