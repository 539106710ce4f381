package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "regulations", Name: "http_requests_total", Help: "Number of handled HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	RegulationsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "regulations", Name: "ingest_total", Help: "Regulation ingestion attempts by result."},
		[]string{"result"},
	)
	FlashcardsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "regulations", Name: "flashcards_generated_total", Help: "Number of flashcards generated and persisted."},
	)
	InspirationLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "regulations", Name: "inspiration_lookups_total", Help: "Encyclopedia lookups by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(RegulationsIngested)
	reg.MustRegister(FlashcardsGenerated)
	reg.MustRegister(InspirationLookups)
}
