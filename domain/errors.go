package domain

import "errors"

var (
	ErrValidation         = errors.New("datos inválidos")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUnauthorized       = errors.New("acceso denegado")
	ErrForbidden          = errors.New("permisos insuficientes")
	ErrConflict           = errors.New("el recurso ya existe")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
