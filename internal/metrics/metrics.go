package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxhire",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voxhire",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxhire",
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	})

	evaluationTiers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxhire",
		Name:      "evaluation_tier_total",
		Help:      "Answer evaluations by the scoring tier that produced the result",
	}, []string{"tier"})

	detachedOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxhire",
		Name:      "detached_operations_total",
		Help:      "Best-effort side effects by operation and outcome",
	}, []string{"operation", "outcome"})

	judgePolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxhire",
		Name:      "judge_polls_total",
		Help:      "Judge status polls by outcome",
	}, []string{"outcome"})
)

// EvaluationTier counts one evaluation resolved by tier.
func EvaluationTier(tier string) {
	evaluationTiers.WithLabelValues(tier).Inc()
}

// Detached records the outcome of a best-effort side effect.
func Detached(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	detachedOps.WithLabelValues(operation, outcome).Inc()
}

// JudgePoll counts one status poll against the judge.
func JudgePoll(outcome string) {
	judgePolls.WithLabelValues(outcome).Inc()
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("metrics: underlying ResponseWriter does not support hijacking")
}

// Middleware records request metrics labelled by the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(rec.status),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
