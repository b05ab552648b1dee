package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/vallas-erp/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)
	})
	return validate
}

// Validate valida las etiquetas `validate` del DTO y devuelve un *domain.ValidationError
// con el primer campo inválido.
func Validate(in any) error {
	err := instance().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewValidationError(fe.Field(), reason(fe))
	}
	return domain.NewValidationError("", err.Error())
}

// ValidateID exige un UUID en identificadores que llegan por la ruta o el query.
func ValidateID(field, value string) error {
	if err := instance().Var(value, "required,uuid"); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.NewValidationError(field, reason(verrs[0]))
		}
		return domain.NewValidationError(field, err.Error())
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "max":
		return "excede el largo máximo " + fe.Param()
	case "min":
		return "es menor al mínimo " + fe.Param()
	case "uuid4", "uuid":
		return "debe ser un UUID"
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
