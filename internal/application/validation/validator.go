// Package validation valida los DTOs de entrada con go-playground/validator y traduce
// los fallos a *domain.ValidationError, con independencia del backend de persistencia.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/pkg/password"
)

// MaxPriceDigits dígitos enteros permitidos en el precio de un producto.
const MaxPriceDigits = 8

// MaxPriceDecimals decimales permitidos en el precio (numeric(10,2)).
const MaxPriceDecimals = 2

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Los campos se reportan con su nombre JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal se valida como su representación en texto.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.String()
	}, decimal.Decimal{})

	_ = v.RegisterValidation("price", validatePrice)
	_ = v.RegisterValidation("pwbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= password.MaxBytes
	})
	return v
}

// validatePrice: no negativo, como mucho MaxPriceDigits dígitos enteros y MaxPriceDecimals decimales.
func validatePrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || d.IsNegative() {
		return false
	}
	if !d.Equal(d.Truncate(MaxPriceDecimals)) {
		return false
	}
	return len(d.Truncate(0).String()) <= MaxPriceDigits
}

// Struct valida s y devuelve *domain.ValidationError con un FieldError por regla incumplida.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validación: %w", err)
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", fe.Field())
	case "email":
		return "ingrese un email válido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s no puede exceder %s caracteres", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s no puede exceder %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	case "pwbytes":
		return fmt.Sprintf("%s no puede exceder %d bytes", fe.Field(), password.MaxBytes)
	case "price":
		return fmt.Sprintf("%s no puede ser negativo ni exceder %d dígitos enteros y %d decimales",
			fe.Field(), MaxPriceDigits, MaxPriceDecimals)
	default:
		return fmt.Sprintf("%s no es válido (%s)", fe.Field(), fe.Tag())
	}
}
