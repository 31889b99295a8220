package server

import (
	"errors"
	"net/url"

	"pressroom/internal/middleware"
	"pressroom/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// nameParam returns the unescaped route parameter, so "web%20dev" reads as "web dev".
func nameParam(c *fiber.Ctx, param string) string {
	raw := c.Params(param)
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// decodeBody parses a JSON request body into out. An empty body is a
// validation failure, whatever the Content-Type.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func decodeBody(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Request body is required"))
		return errResponseWritten
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			&models.AppError{Code: models.CodeValidation, Message: "Invalid request body", Err: err})
		return errResponseWritten
	}
	return nil
}

// respond writes err as a JSON error, or nothing when a helper already did.
func respond(c *fiber.Ctx, err error) error {
	if errors.Is(err, errResponseWritten) {
		return nil
	}
	return models.RespondWithAppError(c, err)
}

// caller returns the authenticated caller, or nil on public routes.
func caller(c *fiber.Ctx) *models.AuthContext {
	return middleware.AuthFrom(c)
}
