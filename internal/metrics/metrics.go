package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopassist_recommendations_total",
			Help: "Recommendation responses by source (ai, fallback, empty).",
		},
		[]string{"source"},
	)
	aiFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopassist_ai_failures_total",
			Help: "AI path failures that triggered the keyword fallback.",
		},
		[]string{"kind"},
	)
	historyWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopassist_history_write_failures_total",
			Help: "Recommendation history inserts that failed.",
		},
	)
	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopassist_cache_requests_total",
			Help: "Catalog cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
	aiCallDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopassist_ai_call_duration_seconds",
			Help:    "Latency of generative model calls.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20},
		},
	)
)

func init() {
	prometheus.MustRegister(recommendationsTotal)
	prometheus.MustRegister(aiFailuresTotal)
	prometheus.MustRegister(historyWriteFailures)
	prometheus.MustRegister(cacheRequests)
	prometheus.MustRegister(aiCallDuration)
}

func RecordRecommendation(source string) { recommendationsTotal.WithLabelValues(source).Inc() }

func RecordAIFailure(kind string) { aiFailuresTotal.WithLabelValues(kind).Inc() }

func RecordHistoryFailure() { historyWriteFailures.Inc() }

func RecordCache(result string) { cacheRequests.WithLabelValues(result).Inc() }

func ObserveAICall(d time.Duration) { aiCallDuration.Observe(d.Seconds()) }

// Handler serves the Prometheus exposition format on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
