package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logger writes one access-log entry per request through log.
// Fields: request_id, method, path, status, latency (ms, float) and ts.
func Logger(log zerolog.Logger) fiber.Handler {
	return accessLog(log.With().Str("component", "http").Logger(), time.UTC)
}

// LoggerWithWriter is Logger with a bare JSON sink and a timezone for the ts field.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return accessLog(zerolog.New(w), loc)
}

func accessLog(log zerolog.Logger, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet, so derive the status it will write.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().AnErr("error", err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}

		ev.Str("request_id", RequestIDFrom(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Str("ts", start.In(loc).Format(time.RFC3339Nano)).
			Send()

		return err
	}
}
