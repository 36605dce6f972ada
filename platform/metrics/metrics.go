// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "collegesera"

// Registration outcomes.
const (
	RegistrationCreated = "created"
	RegistrationUpdated = "updated"
	RegistrationOffline = "offline"
)

// Interaction outcomes.
const (
	InteractionStored  = "stored"
	InteractionSkipped = "skipped"
	InteractionFailed  = "failed"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lead_registrations_total",
			Help:      "Lead registrations by outcome",
		},
		[]string{"outcome"},
	)

	chatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_replies_total",
			Help:      "Chat replies by answer mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	chatReplyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_reply_duration_seconds",
			Help:      "Time spent waiting for the language model",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"mode"},
	)

	interactionsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_logged_total",
			Help:      "Chat turns handed to the interaction log by outcome",
		},
		[]string{"outcome"},
	)

	dedupeRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lead_dedupe_runs_total",
			Help:      "Duplicate cleanup runs",
		},
		[]string{"dry_run", "status"},
	)

	dedupeLeadsMerged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lead_dedupe_merged_total",
			Help:      "Duplicate leads deleted after their interactions moved",
		},
	)

	dedupeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lead_dedupe_failures_total",
			Help:      "Duplicates left in place by failed step",
		},
		[]string{"step"},
	)
)

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware records request counts and latency labelled by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRegistration counts a lead registration outcome.
func RecordRegistration(outcome string) {
	leadRegistrations.WithLabelValues(outcome).Inc()
}

// RecordChatReply counts a model reply and how long it took.
func RecordChatReply(mode string, err error, duration time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	chatReplies.WithLabelValues(mode, outcome).Inc()
	chatReplyDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordInteraction counts an interaction log attempt.
func RecordInteraction(outcome string) {
	interactionsLogged.WithLabelValues(outcome).Inc()
}

// RecordDedupeRun counts a cleanup run. Failed runs carry no merge counts.
func RecordDedupeRun(dryRun bool, err error, merged, moveFailures, deleteFailures int) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	dedupeRuns.WithLabelValues(strconv.FormatBool(dryRun), status).Inc()
	if err != nil {
		return
	}
	dedupeLeadsMerged.Add(float64(merged))
	dedupeFailures.WithLabelValues("move").Add(float64(moveFailures))
	dedupeFailures.WithLabelValues("delete").Add(float64(deleteFailures))
}
