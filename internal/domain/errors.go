package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidState      = errors.New("el documento no está en estado editable")
	ErrEmptyTemplate     = errors.New("la plantilla no tiene líneas")
	ErrValidation        = errors.New("entrada inválida")
	ErrPersistence       = errors.New("error de persistencia")
	ErrAccountUnresolved = errors.New("no se pudo resolver la cuenta contable")
	ErrUnbalanced        = errors.New("el comprobante no cuadra (debe != haber)")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Etapas de escritura para PersistenceError.
const (
	StageLoad   = "load"
	StageDelete = "delete"
	StageInsert = "insert"
	StageUpdate = "update"
	StageCommit = "commit"
)

// PersistenceError describe un fallo de escritura. Partial indica que el almacén quedó
// en un estado degradado (p. ej. líneas anteriores borradas y nuevas sin insertar);
// con Partial=false nada cambió.
type PersistenceError struct {
	Op      string
	Stage   string
	Partial bool
	Err     error
}

func (e *PersistenceError) Error() string {
	state := "sin cambios"
	if e.Partial {
		state = "estado parcial"
	}
	return fmt.Sprintf("%s: fallo en %s (%s): %v", e.Op, e.Stage, state, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrPersistence).
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// ValidationError entrada mal formada en un campo concreto.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "entrada inválida: " + e.Reason
	}
	return fmt.Sprintf("entrada inválida: %s %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsPartial informa si err es un PersistenceError que dejó el almacén degradado.
func IsPartial(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Partial
}
