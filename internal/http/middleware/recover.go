package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Recover turns handler panics into 500 responses and logs them with a stack trace.
func Recover(log zerolog.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error().
				Str("event", "panic").
				Str("request_id", RequestIDFrom(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("panic", e).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
		},
	})
}
