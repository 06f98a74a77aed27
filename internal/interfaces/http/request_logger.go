package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-inventario/pkg/logger"
	"github.com/jhoicas/taller-inventario/pkg/metrics"
)

// RequestLogger registra cada petición con zerolog y alimenta las métricas HTTP.
// La ruta se reporta como patrón (/api/products/:id) para no disparar la cardinalidad.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber fije el status antes de medir
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.ObserveRequest(route, c.Method(), status, elapsed)

		evt := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = log.Error()
		case status >= fiber.StatusBadRequest:
			evt = log.Warn()
		}
		if internal, ok := c.Locals(LocalError).(error); ok {
			evt = evt.Err(internal)
		} else if err != nil {
			evt = evt.Err(err)
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("petición HTTP")
		return nil
	}
}
