package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// RequestObserver registra cada petición en el log y en las métricas.
// Resuelve aquí el error de la cadena con el ErrorHandler de la app para conocer el status final.
func RequestObserver(log *logger.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if metrics != nil {
			metrics.Observe(c.Method(), route, status, latency.Seconds())
		}
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
