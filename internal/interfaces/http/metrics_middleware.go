package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/pkg/metrics"
)

// MetricsMiddleware instrumenta cada request con el contador y la latencia de pkg/metrics.
// La etiqueta de ruta es el patrón registrado (/api/users/:id), no la URL concreta.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start).Seconds())
		return err
	}
}
