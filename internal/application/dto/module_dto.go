package dto

import "time"

// ModuleResponse un módulo del catálogo de la plataforma.
type ModuleResponse struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CompanyModuleResponse un grant empresa-módulo con metadatos del módulo.
type CompanyModuleResponse struct {
	ID        string         `json:"id"`
	CompanyID string         `json:"company_id"`
	Module    ModuleResponse `json:"module"`
	IsEnabled bool           `json:"is_enabled"`
	CreatedAt time.Time      `json:"created_at"`
}

// ModuleAccessResponse resultado de la consulta "¿mi empresa tiene este
// módulo habilitado ahora mismo?".
type ModuleAccessResponse struct {
	ModuleSlug string `json:"module_slug"`
	CompanyID  string `json:"company_id"`
	Enabled    bool   `json:"enabled"`
}

// GrantPermissionRequest flags de permiso a otorgar/actualizar a un empleado.
type GrantPermissionRequest struct {
	CanRead   bool `json:"can_read"`
	CanWrite  bool `json:"can_write"`
	CanDelete bool `json:"can_delete"`
}

// EmployeePermissionResponse un permiso empleado-módulo con metadatos del módulo.
type EmployeePermissionResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Module      ModuleResponse `json:"module"`
	CanRead     bool           `json:"can_read"`
	CanWrite    bool           `json:"can_write"`
	CanDelete   bool           `json:"can_delete"`
	GrantedByID string         `json:"granted_by_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CleanupCompanyEntry una entrada del reporte de limpieza: permisos huérfanos
// eliminados para un par (empresa, módulo).
type CleanupCompanyEntry struct {
	CompanyID          string `json:"company_id"`
	CompanyName        string `json:"company_name"`
	ModuleID           string `json:"module_id"`
	ModuleName         string `json:"module_name"`
	DeletedPermissions int64  `json:"deleted_permissions"`
}

// CleanupFailureEntry un grupo que no pudo procesarse; el barrido continúa
// con los demás y lo reporta aquí en lugar de abortar.
type CleanupFailureEntry struct {
	CompanyID string `json:"company_id"`
	ModuleID  string `json:"module_id"`
	Error     string `json:"error"`
}

// CleanupReport resultado del barrido de reconciliación.
type CleanupReport struct {
	DeletedCount int64                 `json:"deleted_count"`
	Companies    []CleanupCompanyEntry `json:"companies"`
	Failures     []CleanupFailureEntry `json:"failures,omitempty"`
}
