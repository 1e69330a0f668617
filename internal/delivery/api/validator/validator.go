// Package validator adapts go-playground/validator to echo.
package validator

import (
	"strings"

	domainerrors "fuelwatch/internal/domain/errors"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator implements echo.Validator
type Validator struct {
	validate *govalidator.Validate
}

// New creates a validator
func New() *Validator {
	return &Validator{validate: govalidator.New(govalidator.WithRequiredStructEnabled())}
}

// Validate validates a struct and reports every failing field in the error details
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs govalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Namespace()+" failed on '"+fe.Tag()+"'")
	}

	return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(strings.Join(msgs, "; ")))
}
