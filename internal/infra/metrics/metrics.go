package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "health_assistant"

// Outcome labels shared by every counter.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
	OutcomeRejected = "rejected"
)

var (
	AnalysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_requests_total",
			Help:      "Symptom analysis submissions by outcome.",
		},
		[]string{"outcome"},
	)

	Translations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "Translation calls by outcome. Identity short-circuits count as skipped.",
		},
		[]string{"outcome"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification delivery attempts per channel and route.",
		},
		[]string{"channel", "route", "outcome"},
	)

	Speech = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "speech_total",
			Help:      "Speech playback requests by outcome.",
		},
		[]string{"outcome"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func Outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
