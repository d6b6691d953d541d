package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate is the shared validator instance for all intake DTOs. Payload
// shapes are validated here at the boundary; past this point the payloads
// are stored and served opaquely.
var validate = validator.New(validator.WithRequiredStructEnabled())

// bindAndValidate binds the JSON body into dst and runs struct validation.
// On failure it writes a 400 response and returns false; handlers should
// simply return nil in that case.
func bindAndValidate(c echo.Context, dst any) bool {
	if err := c.Bind(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		return false
	}
	return true
}
