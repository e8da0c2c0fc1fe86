package repository

import (
	"context"

	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
)

// CompanyModuleRepository define el puerto de persistencia del ledger de
// acceso empresa-módulo. Upsert garantiza a lo sumo una fila por
// (company_id, module_id); "ausente o deshabilitado" se trata igual en
// todas las consultas.
type CompanyModuleRepository interface {
	// Upsert crea o actualiza el grant dejando IsEnabled según el struct.
	Upsert(ctx context.Context, grant *entity.CompanyModule) error
	Get(ctx context.Context, companyID, moduleID string) (*entity.CompanyModule, error)
	// IsEnabled responde la pregunta autoritativa del invariante: ¿tiene la
	// empresa el módulo habilitado ahora mismo? Fila ausente cuenta como false.
	IsEnabled(ctx context.Context, companyID, moduleID string) (bool, error)
	// ListByCompany devuelve todos los grants (habilitados y deshabilitados)
	// con metadatos del módulo.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyModuleGrant, error)
}
