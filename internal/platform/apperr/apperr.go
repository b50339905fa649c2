// Package apperr define la taxonomía de errores del dominio.
// Los repos y services devuelven *Error; los handlers traducen Kind a status HTTP.
package apperr

import (
	"errors"
	"net/http"
)

// Kind clasifica un error de forma estable (se expone en la API).
type Kind string

const (
	KindDuplicateIdentity Kind = "DuplicateIdentity"
	KindNotFound          Kind = "NotFound"
	KindInvalidCredential Kind = "InvalidCredential"
	KindValidation        Kind = "ValidationError"
	KindMalformedSchedule Kind = "MalformedSchedule"
	KindUnauthorized      Kind = "Unauthorized"
	KindForbidden         Kind = "Forbidden"
	KindInternal          Kind = "Internal"
)

// Error es el error de dominio con kind + mensaje corto para el usuario.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is compara por Kind: errors.Is(err, apperr.ErrNotFound) matchea cualquier NotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels para errors.Is.
var (
	ErrDuplicateIdentity = New(KindDuplicateIdentity, "identity already exists")
	ErrNotFound          = New(KindNotFound, "not found")
	ErrInvalidCredential = New(KindInvalidCredential, "invalid credentials")
	ErrValidation        = New(KindValidation, "invalid input")
	ErrMalformedSchedule = New(KindMalformedSchedule, "malformed schedule")
	ErrUnauthorized      = New(KindUnauthorized, "unauthorized")
	ErrForbidden         = New(KindForbidden, "forbidden")
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Validation(message string) *Error { return New(KindValidation, message) }
func Duplicate(message string) *Error  { return New(KindDuplicateIdentity, message) }

// KindOf devuelve el Kind del primer *Error en la cadena, o Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus mapea un Kind a status HTTP.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindDuplicateIdentity:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidCredential, KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation, KindMalformedSchedule:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage no filtra detalles de errores internos.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal error"
}
