package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/miradorstack/engine-condition/internal/models"
)

const (
	// OutcomeSuccess labels evaluations that produced a verdict or advisory list.
	OutcomeSuccess = "success"
	// OutcomeRejected labels readings refused by catalog validation.
	OutcomeRejected = "rejected"
	// OutcomeError labels classifier failures.
	OutcomeError = "error"
)

var (
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine_condition",
			Name:      "evaluations_total",
			Help:      "Total number of evaluations handled, partitioned by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	verdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine_condition",
			Name:      "verdicts_total",
			Help:      "Classifier verdicts returned, partitioned by label.",
		},
		[]string{"verdict"},
	)

	advisoriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine_condition",
			Name:      "advisories_total",
			Help:      "Threshold advisories raised, partitioned by rule id.",
		},
		[]string{"rule"},
	)

	rejectedReadingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine_condition",
			Name:      "rejected_readings_total",
			Help:      "Readings refused because a field was missing, non-finite or out of bounds.",
		},
		[]string{"field"},
	)

	evaluationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "engine_condition",
			Name:      "evaluation_seconds",
			Help:      "Predict latency in seconds, advisor and classifier together.",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
	)
)

// Register attaches engine-condition collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		evaluationsTotal,
		verdictsTotal,
		advisoriesTotal,
		rejectedReadingsTotal,
		evaluationDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveEvaluation counts one evaluation of the named operation.
func ObserveEvaluation(operation, outcome string) {
	switch outcome {
	case OutcomeRejected, OutcomeError:
	default:
		outcome = OutcomeSuccess
	}
	evaluationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObservePrediction records a verdict and how long the predict action took.
func ObservePrediction(duration time.Duration, verdict models.Verdict) {
	verdictsTotal.WithLabelValues(verdict.String()).Inc()
	if duration < 0 {
		duration = 0
	}
	evaluationDurationSeconds.Observe(duration.Seconds())
}

// ObserveAdvisories counts each triggered rule.
func ObserveAdvisories(advisories []models.Advisory) {
	for _, adv := range advisories {
		advisoriesTotal.WithLabelValues(adv.RuleID).Inc()
	}
}

// ObserveRejection counts a reading refused on field.
func ObserveRejection(field models.Field) {
	rejectedReadingsTotal.WithLabelValues(field.Key()).Inc()
}
