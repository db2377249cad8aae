package observability

import (
	"context"
	"time"

	"github.com/aretw0/decompose/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedOracle times every call made through an oracle, including
// calls issued outside the engine (e.g. by baseline methods).
type InstrumentedOracle struct {
	next     ports.Oracle
	calls    *prometheus.CounterVec
	duration prometheus.Histogram
}

// InstrumentOracle wraps next with transport-level metrics registered on m.
func InstrumentOracle(next ports.Oracle, m *Metrics) *InstrumentedOracle {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oracle_requests_total",
		Help:      "Requests sent to the oracle transport, by status.",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "oracle_request_duration_seconds",
		Help:      "Latency of oracle transport requests.",
		Buckets:   prometheus.DefBuckets,
	})
	m.registry.MustRegister(calls, duration)

	return &InstrumentedOracle{next: next, calls: calls, duration: duration}
}

// Respond implements ports.Oracle.
func (o *InstrumentedOracle) Respond(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := o.next.Respond(ctx, prompt)
	o.duration.Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	o.calls.WithLabelValues(status).Inc()
	return resp, err
}
