// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SubmissionsTotal counts graded submissions by outcome (graded|degraded).
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "code_battle",
		Name:      "submissions_total",
		Help:      "Submissions recorded, labeled by grading outcome.",
	}, []string{"outcome"})

	// ViolationsTotal counts proctoring violations by kind.
	ViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "code_battle",
		Name:      "violations_total",
		Help:      "Proctoring violations recorded, labeled by kind.",
	}, []string{"kind"})

	// JudgeFailuresTotal counts judge calls that fell back to the degraded verdict.
	JudgeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "code_battle",
		Name:      "judge_failures_total",
		Help:      "Judge collaborator failures resolved to degraded verdicts.",
	})

	// SyncTicksTotal counts reconciliation attempts by result (ok|failed).
	SyncTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "code_battle",
		Name:      "sync_ticks_total",
		Help:      "State reconciliation ticks, labeled by result.",
	}, []string{"result"})
)

// Handler serves the default registry (mounted at /metrics).
func Handler() http.Handler {
	return promhttp.Handler()
}
