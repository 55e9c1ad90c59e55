package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shopclock"

var (
	once sync.Once

	clockActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_actions_total",
			Help:      "Count of clock-in and clock-out actions.",
		},
		[]string{"action"},
	)

	breakActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "break_actions_total",
			Help:      "Count of break starts and ends, including automatic ends at clock-out.",
		},
		[]string{"action"},
	)

	lateness = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lateness_evaluations_total",
			Help:      "Count of lateness evaluations by result.",
		},
		[]string{"result"},
	)

	openSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_sessions",
			Help:      "Number of attendance sessions without a clock-out.",
		},
	)

	staleSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stale_open_sessions",
			Help:      "Open sessions that have been running longer than the stale threshold.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(clockActions, breakActions, lateness, openSessions, staleSessions)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncClockIn() {
	clockActions.WithLabelValues("clock_in").Inc()
}

func IncClockOut() {
	clockActions.WithLabelValues("clock_out").Inc()
}

func IncBreakStarted() {
	breakActions.WithLabelValues("start").Inc()
}

func IncBreakEnded(auto bool) {
	if auto {
		breakActions.WithLabelValues("auto_end").Inc()
		return
	}
	breakActions.WithLabelValues("end").Inc()
}

// IncLateness records a lateness evaluation result: late, on_time or skipped.
func IncLateness(result string) {
	lateness.WithLabelValues(result).Inc()
}

func SetOpenSessions(total, stale int) {
	openSessions.Set(float64(total))
	staleSessions.Set(float64(stale))
}
