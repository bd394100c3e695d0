package validator

import (
	"github.com/go-playground/validator/v10"

	"formgate/internal/domain/field"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// clphone backs the whatsapp number setting, sharing the field
	// engine's Chilean phone rule
	validate.RegisterValidation("clphone", func(fl validator.FieldLevel) bool {
		return field.Validate(field.Spec{Type: field.TypeTel}, fl.Field().String()).Valid
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
