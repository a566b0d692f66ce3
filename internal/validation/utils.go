package validation

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lvr-calculator/internal/errs"
)

// InvalidBodyMessage is returned when the body can't be decoded.
const InvalidBodyMessage = "Request body must be a valid JSON object."

// Validatable is implemented by request payloads that validate themselves.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds the request body into payload and validates it.
//
// payload must be a pointer. Any bind failure (malformed JSON, a
// non-object body, an unsupported content type) becomes a 400 with
// InvalidBodyMessage. A validation failure becomes a 400 carrying the
// validation message verbatim.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(InvalidBodyMessage, nil).WithInternal(err)
	}

	if err := payload.Validate(); err != nil {
		return errs.ValidationError(err)
	}

	return nil
}
