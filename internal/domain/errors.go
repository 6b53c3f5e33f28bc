package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrUnauthenticated     = errors.New("sesión requerida")
	ErrForbidden           = errors.New("acceso denegado")
	ErrValidation          = errors.New("datos inválidos")
	ErrFileTooLarge        = errors.New("la foto supera el tamaño máximo permitido")
	ErrUnsupportedFileType = errors.New("tipo de archivo no soportado")
	ErrInvalidTransition   = errors.New("la visita no admite esta acción en su estado actual")
	ErrPersistence         = errors.New("almacenamiento no disponible")
)

// ValidationError describe el primer campo que no pasó la validación.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid construye un ValidationError para field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
