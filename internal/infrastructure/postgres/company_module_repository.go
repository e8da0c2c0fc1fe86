package postgres

import (
	"context"
	"fmt"

	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

var _ repository.CompanyModuleRepository = (*CompanyModuleRepo)(nil)

// CompanyModuleRepo implementación del ledger empresa-módulo sobre PostgreSQL.
type CompanyModuleRepo struct {
	q Querier
}

// NewCompanyModuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyModuleRepository(q Querier) *CompanyModuleRepo {
	return &CompanyModuleRepo{q: q}
}

// Upsert crea o actualiza el grant. El constraint único (company_id, module_id)
// garantiza a lo sumo una fila por par; el conflicto solo actualiza is_enabled.
func (r *CompanyModuleRepo) Upsert(ctx context.Context, grant *entity.CompanyModule) error {
	query := `
		INSERT INTO company_modules (id, company_id, module_id, is_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, module_id)
		DO UPDATE SET is_enabled = EXCLUDED.is_enabled, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		grant.ID, grant.CompanyID, grant.ModuleID, grant.IsEnabled,
		grant.CreatedAt, grant.UpdatedAt,
	).Scan(&grant.ID, &grant.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert company module: %w", err)
	}
	return nil
}

// Get obtiene el grant de una empresa para un módulo. Devuelve nil sin error si no existe.
func (r *CompanyModuleRepo) Get(ctx context.Context, companyID, moduleID string) (*entity.CompanyModule, error) {
	query := `
		SELECT id, company_id, module_id, is_enabled, created_at, updated_at
		FROM company_modules WHERE company_id = $1 AND module_id = $2`
	var g entity.CompanyModule
	err := r.q.QueryRow(ctx, query, companyID, moduleID).Scan(
		&g.ID, &g.CompanyID, &g.ModuleID, &g.IsEnabled, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company module: %w", err)
	}
	return &g, nil
}

// IsEnabled responde si la empresa tiene el módulo habilitado ahora mismo.
// Fila ausente equivale a false.
func (r *CompanyModuleRepo) IsEnabled(ctx context.Context, companyID, moduleID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM company_modules
			 WHERE company_id = $1
			   AND module_id  = $2
			   AND is_enabled = true
		)`
	var enabled bool
	if err := r.q.QueryRow(ctx, query, companyID, moduleID).Scan(&enabled); err != nil {
		return false, fmt.Errorf("check company module: %w", err)
	}
	return enabled, nil
}

// ListByCompany devuelve todos los grants de la empresa (habilitados o no)
// con los metadatos del módulo.
func (r *CompanyModuleRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyModuleGrant, error) {
	query := `
		SELECT cm.id, cm.company_id, cm.module_id, cm.is_enabled, cm.created_at, cm.updated_at,
		       m.slug, m.name, m.is_active
		FROM company_modules cm
		JOIN modules m ON m.id = cm.module_id
		WHERE cm.company_id = $1
		ORDER BY m.slug`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyModuleGrant
	for rows.Next() {
		var g entity.CompanyModuleGrant
		if err := rows.Scan(
			&g.ID, &g.CompanyID, &g.ModuleID, &g.IsEnabled, &g.CreatedAt, &g.UpdatedAt,
			&g.ModuleSlug, &g.ModuleName, &g.ModuleIsActive,
		); err != nil {
			return nil, fmt.Errorf("scan company module: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
