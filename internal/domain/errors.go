package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Taxonomía del motor de acceso a módulos.
	ErrModuleNotFound             = errors.New("módulo no encontrado o inactivo")
	ErrCompanyNotFound            = errors.New("empresa no encontrada")
	ErrEmployeeNotFound           = errors.New("empleado no encontrado")
	ErrModuleNotEnabledForCompany = errors.New("la empresa no tiene el módulo habilitado")
	ErrCascadeFailed              = errors.New("la revocación en cascada no pudo completarse")
)
