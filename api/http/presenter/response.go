package presenter

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/nexphase/nexcareer/pkg/apperr"
	"github.com/nexphase/nexcareer/pkg/auth"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Fail maps a use-case error onto an HTTP status. Unknown errors are logged
// and reported as a generic 500.
func Fail(c *fiber.Ctx, err error) error {
	var v apperr.ValidationError
	switch {
	case errors.As(err, &v):
		return Error(c, http.StatusBadRequest, v.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrForbidden):
		return Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		return Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return Error(c, http.StatusConflict, "user already exists")
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return Error(c, http.StatusInternalServerError, "internal server error")
	}
}
