package postgres

import (
	"context"
	"fmt"

	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

var _ repository.UserModulePermissionRepository = (*UserModulePermissionRepo)(nil)

// UserModulePermissionRepo implementación de los permisos empleado-módulo
// sobre PostgreSQL. Los borrados por empresa resuelven la empresa *actual*
// del titular con un join a users, nunca con una columna cacheada.
type UserModulePermissionRepo struct {
	q Querier
}

// NewUserModulePermissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserModulePermissionRepository(q Querier) *UserModulePermissionRepo {
	return &UserModulePermissionRepo{q: q}
}

// Upsert crea o actualiza el permiso. El constraint único (user_id, module_id)
// garantiza a lo sumo una fila por par.
func (r *UserModulePermissionRepo) Upsert(ctx context.Context, perm *entity.UserModulePermission) error {
	query := `
		INSERT INTO user_module_permissions
			(id, user_id, module_id, can_read, can_write, can_delete, granted_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, module_id)
		DO UPDATE SET can_read = EXCLUDED.can_read, can_write = EXCLUDED.can_write,
		              can_delete = EXCLUDED.can_delete, granted_by_id = EXCLUDED.granted_by_id,
		              updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		perm.ID, perm.UserID, perm.ModuleID, perm.CanRead, perm.CanWrite, perm.CanDelete,
		perm.GrantedByID, perm.CreatedAt, perm.UpdatedAt,
	).Scan(&perm.ID, &perm.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user module permission: %w", err)
	}
	return nil
}

// Get obtiene el permiso de un usuario para un módulo. Devuelve nil sin error si no existe.
func (r *UserModulePermissionRepo) Get(ctx context.Context, userID, moduleID string) (*entity.UserModulePermission, error) {
	query := `
		SELECT id, user_id, module_id, can_read, can_write, can_delete, granted_by_id, created_at, updated_at
		FROM user_module_permissions WHERE user_id = $1 AND module_id = $2`
	var p entity.UserModulePermission
	err := r.q.QueryRow(ctx, query, userID, moduleID).Scan(
		&p.ID, &p.UserID, &p.ModuleID, &p.CanRead, &p.CanWrite, &p.CanDelete,
		&p.GrantedByID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user module permission: %w", err)
	}
	return &p, nil
}

// Delete elimina el permiso si existe. Devuelve cuántas filas borró (0 o 1).
func (r *UserModulePermissionRepo) Delete(ctx context.Context, userID, moduleID string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM user_module_permissions WHERE user_id = $1 AND module_id = $2`,
		userID, moduleID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete user module permission: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListByUser devuelve los permisos del empleado con slug y nombre del módulo.
func (r *UserModulePermissionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.UserModulePermissionView, error) {
	query := `
		SELECT p.id, p.user_id, p.module_id, p.can_read, p.can_write, p.can_delete,
		       p.granted_by_id, p.created_at, p.updated_at, m.slug, m.name
		FROM user_module_permissions p
		JOIN modules m ON m.id = p.module_id
		WHERE p.user_id = $1
		ORDER BY m.slug`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user module permissions: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserModulePermissionView
	for rows.Next() {
		var v entity.UserModulePermissionView
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.ModuleID, &v.CanRead, &v.CanWrite, &v.CanDelete,
			&v.GrantedByID, &v.CreatedAt, &v.UpdatedAt, &v.ModuleSlug, &v.ModuleName,
		); err != nil {
			return nil, fmt.Errorf("scan user module permission: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// DeleteByCompanyAndModule borra en un solo statement todos los permisos del
// módulo cuyos titulares pertenecen actualmente a la empresa dada. Es la
// operación de conjunto que usan la cascada de revocación y el barrido.
func (r *UserModulePermissionRepo) DeleteByCompanyAndModule(ctx context.Context, companyID, moduleID string) (int64, error) {
	query := `
		DELETE FROM user_module_permissions p
		USING users u
		WHERE p.user_id = u.id
		  AND u.company_id = $1
		  AND p.module_id  = $2`
	cmd, err := r.q.Exec(ctx, query, companyID, moduleID)
	if err != nil {
		return 0, fmt.Errorf("delete permissions by company and module: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListGroups agrupa todos los permisos existentes por (empresa actual del
// titular, módulo), con los nombres necesarios para el reporte del barrido.
func (r *UserModulePermissionRepo) ListGroups(ctx context.Context) ([]*entity.PermissionGroup, error) {
	query := `
		SELECT u.company_id, c.name, p.module_id, m.slug, m.name, m.is_active, COUNT(*)
		FROM user_module_permissions p
		JOIN users u     ON u.id = p.user_id
		JOIN companies c ON c.id = u.company_id
		JOIN modules m   ON m.id = p.module_id
		GROUP BY u.company_id, c.name, p.module_id, m.slug, m.name, m.is_active
		ORDER BY c.name, m.slug`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list permission groups: %w", err)
	}
	defer rows.Close()

	var groups []*entity.PermissionGroup
	for rows.Next() {
		var g entity.PermissionGroup
		if err := rows.Scan(
			&g.CompanyID, &g.CompanyName, &g.ModuleID, &g.ModuleSlug,
			&g.ModuleName, &g.ModuleIsActive, &g.Permissions,
		); err != nil {
			return nil, fmt.Errorf("scan permission group: %w", err)
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}
