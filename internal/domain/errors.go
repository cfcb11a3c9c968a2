package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Cada categoría mapea a un
// status HTTP estable en la capa de interfaces.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrExpiredBatch       = errors.New("lote vencido")
	ErrInvalidOperation   = errors.New("operación no permitida en el estado actual")
)

// BusinessError envuelve una categoría de error con un mensaje accionable y una
// lista de detalles para el cliente. Los handlers resuelven el status HTTP con
// errors.Is sobre la categoría.
type BusinessError struct {
	Category error
	Message  string
	Details  []string
}

func (e *BusinessError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock) y similares.
func (e *BusinessError) Unwrap() error { return e.Category }

// NewBusinessError construye un BusinessError sobre una categoría.
func NewBusinessError(category error, message string, details ...string) *BusinessError {
	return &BusinessError{Category: category, Message: message, Details: details}
}

// BusinessErrorf construye un BusinessError con mensaje formateado.
func BusinessErrorf(category error, format string, args ...any) *BusinessError {
	return &BusinessError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// DetailsOf extrae los detalles si err es (o envuelve) un BusinessError.
func DetailsOf(err error) []string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Details
	}
	return nil
}
