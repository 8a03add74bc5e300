// Package metrics holds the Prometheus instruments of the calculator.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation sources.
const (
	SourceHTTP = "http"
	SourceMCP  = "mcp"
	SourceCLI  = "cli"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrip_calculations_total",
			Help: "Total number of footprint calculations",
		},
		[]string{"source", "status"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecotrip_calculation_duration_seconds",
			Help:    "Footprint calculation duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
		[]string{"source"},
	)

	// AnnualFootprint buckets bracket the sustainable goal and the
	// Brazilian average.
	AnnualFootprint = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ecotrip_annual_footprint_kg",
			Help:    "Distribution of calculated annual footprints in kgCO2e",
			Buckets: []float64{500, 1000, 2500, 4620, 7500, 10000, 20000},
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrip_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecotrip_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecotrip_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrip_exports_total",
			Help: "Total number of report exports",
		},
		[]string{"format"},
	)
)

// RecordCalculation records one calculation. annualKg is observed only on success.
func RecordCalculation(source string, duration time.Duration, annualKg float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	CalculationsTotal.WithLabelValues(source, status).Inc()
	CalculationDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err == nil {
		AnnualFootprint.Observe(annualKg)
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, code int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLimitExceeded counts one rejected request.
func RecordRateLimitExceeded() {
	RateLimitExceeded.Inc()
}

// RecordExport counts one report export.
func RecordExport(format string) {
	ExportsTotal.WithLabelValues(format).Inc()
}
