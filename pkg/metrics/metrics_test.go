package metrics_test

import (
	"strings"
	"testing"

	"github.com/jhoicas/pos-core/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistraDosVecesSinError(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)
	assert.NoError(t, err)
}

func TestObserveLogin(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.ObserveLogin(metrics.LoginSuccess)
	m.ObserveLogin(metrics.LoginSuccess)
	m.ObserveLogin(metrics.LoginInvalidCredentials)

	const expected = `
# HELP pos_login_attempts_total Intentos de login por resultado
# TYPE pos_login_attempts_total counter
pos_login_attempts_total{outcome="invalid_credentials"} 1
pos_login_attempts_total{outcome="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "pos_login_attempts_total"))
}

func TestObserveHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.ObserveHTTP("GET", "/api/products", 200, 0.01)

	count, err := testutil.GatherAndCount(reg, "pos_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsNil_NoPanic(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveLogin(metrics.LoginSuccess)
		m.ObserveBootstrap()
		m.ObserveHTTP("GET", "/", 200, 0)
	})
}
