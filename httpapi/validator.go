package httpapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// Validator adapts validator.Validate to echo.Validator.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a Validator with the lending_id rule registered.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("lending_id", validateLendingID)

	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

func validateLendingID(fl validator.FieldLevel) bool {
	_, err := lending.ParseID(fl.Field().String())

	return err == nil
}
