package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kartvizit paylaşımı ve kişi ekleme akışının sayaçları.

var (
	// Codec
	PayloadDecodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vcard",
		Subsystem: "codec",
		Name:      "decode_failures_total",
		Help:      "Rejected scanned payloads by reason",
	}, []string{"reason"})

	PayloadsEncoded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vcard",
		Subsystem: "codec",
		Name:      "payloads_encoded_total",
		Help:      "Share payloads produced",
	})

	// Ingestion
	IngestionResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vcard",
		Subsystem: "ingestion",
		Name:      "results_total",
		Help:      "Contact ingestion outcomes",
	}, []string{"result"})

	IngestionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vcard",
		Subsystem: "ingestion",
		Name:      "duration_seconds",
		Help:      "AddContact duration including gate wait",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vcard",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-owner rate limiter",
	}, []string{"route"})

	// Lifecycle
	CardTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vcard",
		Subsystem: "cards",
		Name:      "transitions_total",
		Help:      "Card status transitions (noop when already in target state)",
	}, []string{"transition", "outcome"})

	// Subscriptions
	ActiveSubscriptions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vcard",
		Subsystem: "subscriptions",
		Name:      "active",
		Help:      "Open snapshot subscriptions",
	}, []string{"topic"})
)

const (
	ResultCreated       = "created"
	ResultDuplicate     = "duplicate"
	ResultSelfReference = "self_reference"
	ResultStoreError    = "store_error"
)
