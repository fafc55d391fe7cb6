package serverutils

import (
	"strings"

	"ai-learning-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags on a request DTO and returns a
// validation-kind error listing the offending fields.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Wrap(apperr.KindValidation, "invalid request", err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return apperr.Newf(apperr.KindValidation, "invalid request: %s", strings.Join(fields, ", "))
}
