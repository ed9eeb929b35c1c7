// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Error kinds. Services wrap one of these with fmt.Errorf("%w: ...") and the
// handlers translate the kind into an HTTP status with Status.
var (
	ErrValidacion   = errors.New("dato invalido")
	ErrReferencia   = errors.New("registro en uso")
	ErrConflicto    = errors.New("operacion no permitida en el estado actual")
	ErrNoEncontrado = errors.New("registro no encontrado")
	ErrProhibido    = errors.New("permisos insuficientes")
)

// Status maps an error kind to its HTTP status. Unknown errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidacion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrReferencia), errors.Is(err, ErrConflicto):
		return http.StatusConflict
	case errors.Is(err, ErrNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrProhibido):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
