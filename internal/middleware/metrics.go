package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tailpair/internal/metrics"
)

// HTTPMetrics counts every request by method and response status.
func HTTPMetrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		m.IncHTTPRequest(c.Method(), strconv.Itoa(status))

		return err
	}
}
