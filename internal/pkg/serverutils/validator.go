package serverutils

import (
	"fmt"
	"strings"

	"adminboard-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into the
// domain validation error so the error middleware maps them to 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errs, ok := err.(validator.ValidationErrors); ok {
		verrs = errs
	} else {
		return apperrors.NewValidation("invalid request body")
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return apperrors.NewValidation("%s", strings.Join(parts, "; "))
}
