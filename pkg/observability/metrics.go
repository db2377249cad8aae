package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/decompose/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "decompose"

// Metrics holds the collectors for one registry.
type Metrics struct {
	registry *prometheus.Registry

	LayerVisits    *prometheus.CounterVec
	OracleCalls    *prometheus.CounterVec
	OracleDuration *prometheus.HistogramVec
	Decisions      *prometheus.CounterVec
	WorldUpdates   *prometheus.CounterVec
	Answers        prometheus.Counter
	Tasks          *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LayerVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layer_visits_total",
			Help:      "Belief layers entered, by depth.",
		}, []string{"depth"}),
		OracleCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_calls_total",
			Help:      "Oracle calls by prompt purpose and outcome.",
		}, []string{"purpose", "status"}),
		OracleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_duration_seconds",
			Help:      "Latency of oracle calls.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"purpose"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knowledge_decisions_total",
			Help:      "Knowledge decisions by outcome and escalation step.",
		}, []string{"known", "fallback"}),
		WorldUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "world_updates_total",
			Help:      "World-model update attempts by outcome.",
		}, []string{"outcome"}),
		Answers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Labels produced.",
		}),
		Tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Evaluated tasks by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.LayerVisits, m.OracleCalls, m.OracleDuration,
		m.Decisions, m.WorldUpdates, m.Answers, m.Tasks,
	)
	return m
}

// Registry exposes the underlying registry, e.g. for extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks records engine events into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLayerEnter: func(_ context.Context, e *domain.LayerEvent) {
			m.LayerVisits.WithLabelValues(strconv.Itoa(e.Depth)).Inc()
		},
		OnKnowledgeDecision: func(_ context.Context, e *domain.DecisionEvent) {
			m.Decisions.WithLabelValues(strconv.FormatBool(e.Known), e.Fallback).Inc()
		},
		OnWorldUpdate: func(_ context.Context, e *domain.WorldEvent) {
			m.WorldUpdates.WithLabelValues(e.Outcome).Inc()
		},
		OnAnswer: func(_ context.Context, _ *domain.AnswerEvent) {
			m.Answers.Inc()
		},
		OnOracleCall: func(_ context.Context, e *domain.OracleEvent) {
			status := "ok"
			if e.Err != nil {
				status = "error"
			}
			m.OracleCalls.WithLabelValues(e.Purpose, status).Inc()
			m.OracleDuration.WithLabelValues(e.Purpose).Observe(e.Duration.Seconds())
		},
	}
}

// ObserveTask counts one evaluated task. result is "correct", "wrong" or
// "error".
func (m *Metrics) ObserveTask(result string) {
	m.Tasks.WithLabelValues(result).Inc()
}
