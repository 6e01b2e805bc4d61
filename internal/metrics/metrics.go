// Package metrics provides Prometheus metrics for Namecheap API calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "namecheap"

// Result label values for RequestsTotal.
const (
	ResultOK             = "ok"
	ResultAPIError       = "api_error"
	ResultHTTPError      = "http_error"
	ResultTransportError = "transport_error"
	ResultDecodeError    = "decode_error"
)

var (
	// RequestsTotal counts API calls by command and outcome.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "api_requests_total",
		Help:      "Total Namecheap API calls by command and result.",
	}, []string{"command", "result"})

	// RequestDuration observes API call latency by command.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Namecheap API call latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})

	// BuildInfo is always 1, labelled with version information.
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "build_info",
		Help:      "Build information.",
	}, []string{"version", "go_version"})
)

// ObserveRequest records one finished API call.
func ObserveRequest(command, result string, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(command, result).Inc()
	RequestDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// SetBuildInfo sets the build info gauge.
func SetBuildInfo(version, goVersion string) {
	BuildInfo.WithLabelValues(version, goVersion).Set(1)
}

// WriteTextfile writes every registered metric to path in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
