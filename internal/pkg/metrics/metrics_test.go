package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueOf(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.GetCounter().GetValue()
	}
	return m.GetGauge().GetValue()
}

func TestCounters(t *testing.T) {
	before := valueOf(t, breakActions.WithLabelValues("auto_end"))
	IncBreakEnded(true)
	assert.Equal(t, before+1, valueOf(t, breakActions.WithLabelValues("auto_end")))

	before = valueOf(t, clockActions.WithLabelValues("clock_in"))
	IncClockIn()
	IncClockIn()
	assert.Equal(t, before+2, valueOf(t, clockActions.WithLabelValues("clock_in")))
}

func TestSetOpenSessions(t *testing.T) {
	SetOpenSessions(3, 1)
	assert.Equal(t, float64(3), valueOf(t, openSessions))
	assert.Equal(t, float64(1), valueOf(t, staleSessions))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	Register()
	Register()
	IncLateness("late")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `shopclock_lateness_evaluations_total{result="late"}`)
}
