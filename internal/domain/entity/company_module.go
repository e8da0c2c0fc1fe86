package entity

import "time"

// CompanyModule es el hecho autoritativo "la empresa C tiene el módulo M habilitado".
// Existe a lo sumo una fila por (CompanyID, ModuleID); la ausencia de fila
// equivale a IsEnabled=false. La revocación no borra la fila: la deshabilita.
type CompanyModule struct {
	ID        string
	CompanyID string
	ModuleID  string
	IsEnabled bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyModuleGrant es la vista de un grant junto con los metadatos del módulo,
// para listados y para el reporte de limpieza.
type CompanyModuleGrant struct {
	CompanyModule
	ModuleSlug     string
	ModuleName     string
	ModuleIsActive bool
}
