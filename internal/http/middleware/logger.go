package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"xraysim/internal/logjson"
)

// Logger logs each HTTP request as one JSON line on stdout, timestamped in UTC.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.UTC)
}

// LoggerWithWriter logs each HTTP request as one JSON line on w.
// Fields: request_id (from RequestID), method, path (no query string), status,
// latency in milliseconds, ts in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	logger := logjson.New(w, loc)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := map[string]any{
			"request_id": RequestIDFrom(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000.0,
		}
		if status >= fiber.StatusInternalServerError {
			entry["level"] = "error"
		}
		logger.Log(entry)

		return err
	}
}
