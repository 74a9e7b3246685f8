package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndGauges(t *testing.T) {
	m := New()

	m.IncrementStarted()
	m.IncrementStarted()
	m.IncrementCancelled(ReasonMoved)
	m.IncrementExpired()
	m.SetActive(3)
	m.SetSchedulerRunning(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CountdownsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CountdownsCancelled.WithLabelValues(ReasonMoved)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CountdownsCancelled.WithLabelValues(ReasonExplicit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CountdownsExpired))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveCountdowns))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SchedulerRunning))

	m.SetSchedulerRunning(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SchedulerRunning))
}

func TestNewTwiceDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.IncrementExpired()
	m.ObserveTick(50 * time.Microsecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "countdown_expired_total 1")
	assert.Contains(t, string(body), "countdown_advance_duration_seconds_count 1")
}
