package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ReceiptResultSuccess      = "success"
	ReceiptResultNotFound     = "not_found"
	ReceiptResultInvalidState = "invalid_state"
	ReceiptResultError        = "error"
)

type PaymentMetrics struct {
	PaymentsCreatedTotal prometheus.Counter
	PaymentsUpdatedTotal prometheus.Counter

	ReceiptGeneratedTotal *prometheus.CounterVec // by result
	ReceiptDuration       prometheus.Histogram

	ArtistResolverRequestsTotal *prometheus.CounterVec // by outcome
	ArtistResolverDuration      prometheus.Histogram
}

// NewPaymentMetrics registers every collector on reg. Tests pass their own
// prometheus.NewRegistry() so repeated construction does not collide.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	factory := promauto.With(reg)
	return &PaymentMetrics{
		PaymentsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Total number of payments created",
			},
		),
		PaymentsUpdatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_updated_total",
				Help: "Total number of payments updated",
			},
		),

		ReceiptGeneratedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_receipt_generated_total",
				Help: "Total number of receipt generation attempts",
			},
			[]string{"result"}, // success/not_found/invalid_state/error
		),
		ReceiptDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payments_receipt_duration_seconds",
				Help:    "Duration of receipt generation, artist lookup included",
				Buckets: prometheus.DefBuckets,
			},
		),

		ArtistResolverRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_artist_resolver_requests_total",
				Help: "Total number of artist name lookups",
			},
			[]string{"outcome"}, // resolved/not_found/unavailable
		),
		ArtistResolverDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payments_artist_resolver_duration_seconds",
				Help:    "Duration of calls to the artists service",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}
}

var (
	defaultMetrics *PaymentMetrics
	once           sync.Once
)

// GetMetrics returns the process-wide metrics registered on the default registry.
func GetMetrics() *PaymentMetrics {
	once.Do(func() {
		defaultMetrics = NewPaymentMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}
