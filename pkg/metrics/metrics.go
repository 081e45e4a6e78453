// Package metrics expone contadores Prometheus del servidor POS.
package metrics

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Resultados de login usados como etiqueta.
const (
	LoginSuccess            = "success"
	LoginUserNotFound       = "user_not_found"
	LoginInvalidCredentials = "invalid_credentials"
	LoginInactive           = "inactive"
	LoginError              = "error"
)

// Metrics agrupa los collectors de la aplicación. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	loginAttempts   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	adminBootstrap prometheus.Counter
}

// New crea los collectors y los registra en reg (prometheus.DefaultRegisterer si es nil).
// Un collector ya registrado no es error.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_login_attempts_total",
			Help: "Intentos de login por resultado",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		adminBootstrap: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_admin_bootstrap_total",
			Help: "Veces que se creó el usuario administrador inicial",
		}),
	}
	for _, c := range []prometheus.Collector{m.loginAttempts, m.httpRequests, m.httpDuration, m.adminBootstrap} {
		if err := registerCollector(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveLogin cuenta un intento de login con el resultado dado.
func (m *Metrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

// ObserveBootstrap cuenta la creación del administrador inicial.
func (m *Metrics) ObserveBootstrap() {
	if m == nil {
		return
	}
	m.adminBootstrap.Inc()
}

// ObserveHTTP registra un request terminado.
func (m *Metrics) ObserveHTTP(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// RegisterPool expone las estadísticas del pool de conexiones.
func RegisterPool(reg prometheus.Registerer, pool *pgxpool.Pool) error {
	return registerCollector(reg, newPoolCollector(pool))
}

// registerCollector registra el collector en el registry indicado, ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}
