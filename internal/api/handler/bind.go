package handler

import (
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/storemanager/store-api/internal/core/domain"
)

// typeMessages describes the expected JSON type of known fields.
var typeMessages = map[string]string{
	"email":         "must be a string",
	"password":      "must be a string",
	"is_admin":      "must be a boolean",
	"product_name":  "must be a string",
	"category":      "must be a string",
	"quantity":      "must be a non-negative integer",
	"unit_price":    "must be a positive number",
	"product_id":    "must be an integer",
	"refresh_token": "must be a string",
}

// bindAndValidate decodes the request body into req and runs the struct
// validator. Malformed bodies and wrongly typed fields come back as
// *domain.ValidationError.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			msg, ok := typeMessages[ute.Field]
			if !ok {
				msg = "has the wrong type"
			}
			return domain.NewValidationError(ute.Field, "%s", msg)
		}
		return domain.NewValidationError("body", "must be a valid JSON object")
	}
	return c.Validate(req)
}
