package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "premam/internal/errors"
)

// respondError translates a domain error into the taxonomy's HTTP shape.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// badRequest is the shape for bind/validate failures.
func badRequest(c echo.Context, message string) error {
	return c.JSON(400, apperrors.ErrorResponse{
		Error: message,
		Code:  "VALIDATION_FAILED",
	})
}
