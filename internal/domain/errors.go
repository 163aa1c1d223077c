package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnsupportedFormat = errors.New("formato de archivo no permitido")
	ErrInvalidMFACode    = errors.New("código de verificación inválido")
	ErrMFANotEnabled     = errors.New("la verificación en dos pasos no está activa")
	ErrMFAAlreadyEnabled = errors.New("la verificación en dos pasos ya está activa")
	ErrMFANotConfigured  = errors.New("la verificación en dos pasos no ha sido configurada")
)
