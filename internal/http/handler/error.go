package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"docsite/internal/auth"
	"docsite/internal/http/middleware"
	"docsite/internal/service"
)

// errorPayload is the body of every JSON error response.
type errorPayload struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "VALIDATION_ERROR", "NOT_FOUND")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		Code:      code,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// respondError maps service errors to responses. notFound is the message used for
// ErrNotFound. Unknown errors are returned unchanged so ErrorHandler logs them as 500s.
func respondError(c *fiber.Ctx, err error, notFound string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verr.Msg)
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "ID is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", notFound)
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", "A document with this slug already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusBadRequest, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrIncorrectPassword):
		return writeError(c, fiber.StatusBadRequest, "INCORRECT_PASSWORD", "Current password is incorrect")
	case errors.Is(err, auth.ErrSessionUnverifiable):
		return writeError(c, fiber.StatusServiceUnavailable, "SESSION_UNVERIFIABLE", "Session cannot be verified right now")
	default:
		return err
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Internal errors are logged with the request ID and never echoed to the client.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", message)
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "Unauthorized")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "TOO_MANY_REQUESTS", "too many requests, try again later")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", message)
		}
		if status < fiber.StatusInternalServerError {
			return writeError(c, status, "REQUEST_ERROR", message)
		}

		log.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFrom(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request failed")
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}
