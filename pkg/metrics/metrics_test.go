package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue ищет значение счетчика по имени и значениям меток
func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metricLoop:
		for _, metric := range f.GetMetric() {
			got := make(map[string]string)
			for _, lp := range metric.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue metricLoop
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.IncConfirm("confirmed")
	m.IncConfirm("confirmed")
	m.IncConfirm("overlap")
	m.IncCancel("admin")
	m.IncTxRetry()
	m.ObserveHTTP("GET", "/health", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, m, "booking_confirm_total", map[string]string{"result": "confirmed"}))
	assert.Equal(t, 1.0, counterValue(t, m, "booking_confirm_total", map[string]string{"result": "overlap"}))
	assert.Equal(t, 1.0, counterValue(t, m, "booking_cancel_total", map[string]string{"by": "admin"}))
	assert.Equal(t, 1.0, counterValue(t, m, "tx_retries_total", nil))
	assert.Equal(t, 1.0, counterValue(t, m, "http_requests_total",
		map[string]string{"method": "GET", "route": "/health", "status": "200", "service": "test"}))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncConfirm("confirmed")
		m.IncCancel("requester")
		m.IncTxRetry()
		m.ObserveQuery("select", time.Millisecond)
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
	assert.NotNil(t, m.Handler())
	assert.Nil(t, m.Registry())
}
