package helpers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dropDatabas3/gymgate/internal/httperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate corre las reglas `validate` del struct y traduce la primera
// falla a un error de validación presentable.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		return httperrors.ErrValidation.WithDetail(fmt.Sprintf("field %q failed on rule %q", field, fe.Tag()))
	}
	return httperrors.ErrValidation
}
