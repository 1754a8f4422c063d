package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidID          = errors.New("identificador inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthenticated    = errors.New("inicie sesión para acceder a este recurso")
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidResetToken  = errors.New("el token de recuperación es inválido o ha expirado")
	ErrPasswordMismatch   = errors.New("las contraseñas no coinciden")
	ErrWrongOldPassword   = errors.New("la contraseña actual es incorrecta")
	ErrMailDelivery       = errors.New("no se pudo enviar el correo")
)

// FieldError describe una regla de validación incumplida sobre un campo.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los errores de campo de una entrada.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un ValidationError con un solo campo.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) sobre cualquier ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
