package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	// Validation outcomes by applicability, disruption type and eligibility
	Outcomes *prometheus.CounterVec

	// Awarded compensation in CAD by carrier size
	CompensationAmount *prometheus.HistogramVec

	// Single validation latency
	ValidateLatency prometheus.Histogram

	// Batch sizes and batch latency
	BatchSize    prometheus.Histogram
	BatchLatency prometheus.Histogram

	// Rejected requests by error code
	Rejections *prometheus.CounterVec
}

// New creates a Metrics instance registered with the default registry.
// Call it once per process.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appr_validation_outcomes_total",
			Help: "Total validation outcomes by applicability, disruption type and eligibility",
		}, []string{"applicable", "disruption_type", "eligible"}),

		CompensationAmount: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appr_compensation_amount_cad",
			Help:    "Compensation awarded per validation in CAD",
			Buckets: []float64{0, 400, 700, 900, 1000, 1800, 2400},
		}, []string{"carrier_size"}),

		ValidateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "appr_validate_duration_seconds",
			Help:    "Duration of a single validation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "appr_validate_batch_size",
			Help:    "Number of requests per batch validation",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		}),

		BatchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "appr_validate_batch_duration_seconds",
			Help:    "Duration of a batch validation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appr_validation_rejections_total",
			Help: "Validation requests rejected before evaluation, by error code",
		}, []string{"code"}),
	}
}

// IncrementOutcome records a validation outcome.
func (m *Metrics) IncrementOutcome(applicable bool, disruptionType string, eligible bool) {
	if m != nil {
		m.Outcomes.WithLabelValues(strconv.FormatBool(applicable), disruptionType, strconv.FormatBool(eligible)).Inc()
	}
}

// ObserveAmount records the awarded amount.
func (m *Metrics) ObserveAmount(carrierSize string, amount float64) {
	if m != nil {
		m.CompensationAmount.WithLabelValues(carrierSize).Observe(amount)
	}
}

// ObserveValidateLatency records a single validation duration.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// ObserveBatch records a batch size and its duration.
func (m *Metrics) ObserveBatch(size int, d time.Duration) {
	if m != nil {
		m.BatchSize.Observe(float64(size))
		m.BatchLatency.Observe(d.Seconds())
	}
}

// IncrementRejection records a rejected request.
func (m *Metrics) IncrementRejection(code string) {
	if m != nil {
		m.Rejections.WithLabelValues(code).Inc()
	}
}
