package entity

import "time"

// UserModulePermission es el permiso de un empleado sobre un módulo
// (flags read/write/delete). Existe a lo sumo una fila por (UserID, ModuleID).
//
// Deliberadamente NO guarda la empresa bajo la que se otorgó: la empresa
// válida se deriva siempre del CompanyID *actual* del usuario al momento de
// evaluar. Una fila cuya empresa actual no tiene el módulo habilitado es una
// fila huérfana y el barrido de reconciliación la elimina.
type UserModulePermission struct {
	ID          string
	UserID      string
	ModuleID    string
	CanRead     bool
	CanWrite    bool
	CanDelete   bool
	GrantedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserModulePermissionView es la vista de un permiso con los metadatos del
// módulo para mostrar en el listado del empleado.
type UserModulePermissionView struct {
	UserModulePermission
	ModuleSlug string
	ModuleName string
}

// PermissionGroup agrupa los permisos existentes por la empresa *actual* de
// sus titulares y por módulo. Es la unidad de evaluación del barrido de
// reconciliación: cada grupo se valida y borra de forma independiente.
type PermissionGroup struct {
	CompanyID      string
	CompanyName    string
	ModuleID       string
	ModuleSlug     string
	ModuleName     string
	ModuleIsActive bool
	Permissions    int
}
