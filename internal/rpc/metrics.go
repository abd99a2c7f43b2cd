package rpc

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Metrics holds the resolver service collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	checked  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dnp_resolver_rpc_requests_total",
				Help: "Resolver RPCs by method and status code.",
			},
			[]string{"method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dnp_resolver_rpc_duration_seconds",
				Help:    "Time taken to serve a resolver RPC.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dnp_resolver_outcome_total",
				Help: "Resolutions by outcome (success, exhausted, timeout, invalid).",
			},
			[]string{"outcome"},
		),
		checked: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dnp_resolver_combinations_checked",
				Help:    "Number of combinations verified per resolution.",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.outcomes, m.checked)
	return m
}

// UnaryServerInterceptor counts and times every unary call.
func (m *Metrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.duration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}

func (m *Metrics) observeOutcome(outcome string, checked uint64) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
	if outcome != "invalid" {
		m.checked.Observe(float64(checked))
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
