package postgres

import (
	"context"
	"fmt"

	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo acceso de solo lectura al catálogo de módulos de la plataforma.
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

// GetByID obtiene un módulo por ID. Devuelve nil sin error si no existe.
func (r *ModuleRepo) GetByID(ctx context.Context, id string) (*entity.Module, error) {
	query := `
		SELECT id, slug, name, is_active, created_at
		FROM modules WHERE id = $1`
	var m entity.Module
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Slug, &m.Name, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return &m, nil
}

// GetBySlug obtiene un módulo por slug. Devuelve nil sin error si no existe.
func (r *ModuleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Module, error) {
	query := `
		SELECT id, slug, name, is_active, created_at
		FROM modules WHERE slug = $1`
	var m entity.Module
	err := r.q.QueryRow(ctx, query, slug).Scan(&m.ID, &m.Slug, &m.Name, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module by slug: %w", err)
	}
	return &m, nil
}

// List devuelve el catálogo completo ordenado por slug.
func (r *ModuleRepo) List(ctx context.Context) ([]*entity.Module, error) {
	query := `
		SELECT id, slug, name, is_active, created_at
		FROM modules ORDER BY slug`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var list []*entity.Module
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Slug, &m.Name, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
