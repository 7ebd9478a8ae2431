package serverutils

import (
	"ikigai-interview-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO's validate tags and converts failures into
// an invalid-argument error with per-field details.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	appErr := apperror.Wrap(apperror.KindInvalidArgument, "request validation failed", err)
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			appErr.WithDetail(fe.Field(), fe.Tag())
		}
	}
	return appErr
}
