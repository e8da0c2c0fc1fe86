package repository

import (
	"context"

	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
)

// UserModulePermissionRepository define el puerto de persistencia de los
// permisos empleado-módulo. Los borrados por empresa son operaciones de
// conjunto (un solo statement), no bucles por fila: los usa la cascada de
// revocación y el barrido de reconciliación.
type UserModulePermissionRepository interface {
	// Upsert crea o actualiza el permiso (a lo sumo una fila por user+module).
	Upsert(ctx context.Context, perm *entity.UserModulePermission) error
	Get(ctx context.Context, userID, moduleID string) (*entity.UserModulePermission, error)
	// Delete elimina el permiso si existe y devuelve cuántas filas borró (0 o 1).
	Delete(ctx context.Context, userID, moduleID string) (int64, error)
	// ListByUser devuelve los permisos del empleado con metadatos del módulo.
	// No re-valida el invariante: una fila huérfana se lista tal cual.
	ListByUser(ctx context.Context, userID string) ([]*entity.UserModulePermissionView, error)
	// DeleteByCompanyAndModule borra todos los permisos del módulo cuyos
	// titulares pertenecen *actualmente* a la empresa dada. Devuelve el total.
	DeleteByCompanyAndModule(ctx context.Context, companyID, moduleID string) (int64, error)
	// ListGroups agrupa todos los permisos existentes por (empresa actual del
	// titular, módulo) con nombres para el reporte del barrido.
	ListGroups(ctx context.Context) ([]*entity.PermissionGroup, error)
}
