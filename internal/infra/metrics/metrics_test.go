package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDispatchMetrics(t *testing.T) {
	m := NewDispatchMetrics(prometheus.NewRegistry())

	m.ObserveRun(constants.RunResultCompleted, 2*time.Second)
	m.ObserveRun(constants.RunResultAborted, time.Second)
	m.AddAlerted(3)
	m.AddAlerted(0)
	m.IncSend(service.SendDelivered)
	m.IncSend(service.SendDelivered)
	m.IncSend(service.SendGone)
	m.AddPruned(1)

	assert.InDelta(t, 1, testutil.ToFloat64(m.RunsTotal.WithLabelValues(constants.RunResultCompleted)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RunsTotal.WithLabelValues(constants.RunResultAborted)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.RemindersAlerted), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.PushSends.WithLabelValues(service.SendDelivered.String())), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PushSends.WithLabelValues(service.SendGone.String())), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SubscriptionsPruned), 0)
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	m := NewDispatchMetrics(reg)
	m.AddPruned(2)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fuelwatch_subscriptions_pruned_total 2")
}
