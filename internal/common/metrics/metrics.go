// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_intents_dispatched_total",
			Help: "Total number of chat utterances classified, by intent",
		},
		[]string{"intent"},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_catalog_loads_total",
			Help: "Total number of catalog loads, by catalog and source (remote or fallback)",
		},
		[]string{"catalog", "source"},
	)

	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_predictions_total",
			Help: "Total number of prediction submissions, by form and outcome",
		},
		[]string{"form", "outcome"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "advisor_prediction_duration_seconds",
			Help: "Duration of prediction round trips in seconds",
		},
		[]string{"form"},
	)

	PredictionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "advisor_predictions_active",
			Help: "Number of prediction submissions in flight per form",
		},
		[]string{"form"},
	)
)
