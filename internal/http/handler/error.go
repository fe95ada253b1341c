package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"xraysim/internal/http/middleware"
)

// errorPayload is the body of every error response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusErrors maps statuses raised by Fiber itself (unknown routes, body
// limits) onto envelope codes. Other statuses keep their code but report
// INTERNAL_ERROR.
var statusErrors = map[int]errorEnvelope{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"BODY_TOO_LARGE", "request body too large"},
	fiber.StatusServiceUnavailable:    {"SERVICE_UNAVAILABLE", "service unavailable"},
}

var internalError = errorEnvelope{"INTERNAL_ERROR", "internal server error"}

// writeError sends the error envelope. message goes to clients verbatim, so it
// never carries the underlying error text.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// ErrorHandler is the app-wide Fiber error handler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		env, ok := statusErrors[status]
		if !ok {
			env = internalError
		}
		return writeError(c, status, env.Code, env.Message)
	}
}
