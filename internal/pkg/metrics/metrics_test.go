package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGateway(t *testing.T) {
	m := New()

	m.ObserveGateway("load", time.Now(), nil)
	m.ObserveGateway("submit", time.Now(), errors.New("boom"))
	m.ObserveGateway("submit", time.Now(), errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayRequests.WithLabelValues("load", OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.gatewayRequests.WithLabelValues("submit", OutcomeFailure)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveGateway("load", time.Now(), nil)
		m.Registration(OutcomeSuccess)
		m.SetActiveDrafts(3)
		m.SetFeedClients(1)
	})
}
