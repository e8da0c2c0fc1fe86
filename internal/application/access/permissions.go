package access

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jash90/accounting-app-sub014/internal/application/dto"
	"github.com/jash90/accounting-app-sub014/internal/domain"
	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

// EmployeePermissionUseCase administra los permisos empleado-módulo. Otorgar
// está condicionado por el invariante: la empresa *actual* del empleado debe
// tener el módulo habilitado en el ledger en el momento del grant.
//
// La autorización del llamador (solo el dueño sobre sus propios empleados) la
// aplica la capa de guards HTTP; aquí se asume ya satisfecha.
type EmployeePermissionUseCase struct {
	moduleRepo repository.ModuleRepository
	userRepo   repository.UserRepository
	grantRepo  repository.CompanyModuleRepository
	permRepo   repository.UserModulePermissionRepository
}

// NewEmployeePermissionUseCase construye el caso de uso de permisos.
func NewEmployeePermissionUseCase(
	moduleRepo repository.ModuleRepository,
	userRepo repository.UserRepository,
	grantRepo repository.CompanyModuleRepository,
	permRepo repository.UserModulePermissionRepository,
) *EmployeePermissionUseCase {
	return &EmployeePermissionUseCase{
		moduleRepo: moduleRepo,
		userRepo:   userRepo,
		grantRepo:  grantRepo,
		permRepo:   permRepo,
	}
}

// Grant crea o actualiza el permiso del empleado sobre el módulo (por slug).
// Falla con ErrModuleNotFound (slug desconocido o módulo inactivo),
// ErrEmployeeNotFound, o ErrModuleNotEnabledForCompany si la empresa actual
// del empleado no tiene el módulo habilitado; en ese caso no se crea ni
// modifica ninguna fila.
func (uc *EmployeePermissionUseCase) Grant(ctx context.Context, employeeID, moduleSlug string, in dto.GrantPermissionRequest, grantedByID string) (*dto.EmployeePermissionResponse, error) {
	module, err := uc.moduleRepo.GetBySlug(ctx, moduleSlug)
	if err != nil {
		return nil, err
	}
	if module == nil || !module.IsActive {
		return nil, domain.ErrModuleNotFound
	}
	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	// La puerta del invariante: se consulta la empresa ACTUAL del empleado,
	// nunca una copia guardada en el permiso.
	enabled, err := uc.grantRepo.IsEnabled(ctx, employee.CompanyID, module.ID)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, domain.ErrModuleNotEnabledForCompany
	}

	now := time.Now()
	perm := &entity.UserModulePermission{
		ID:          uuid.New().String(),
		UserID:      employeeID,
		ModuleID:    module.ID,
		CanRead:     in.CanRead,
		CanWrite:    in.CanWrite,
		CanDelete:   in.CanDelete,
		GrantedByID: grantedByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.permRepo.Upsert(ctx, perm); err != nil {
		return nil, err
	}
	return &dto.EmployeePermissionResponse{
		ID:          perm.ID,
		UserID:      perm.UserID,
		Module:      toModuleResponse(module),
		CanRead:     perm.CanRead,
		CanWrite:    perm.CanWrite,
		CanDelete:   perm.CanDelete,
		GrantedByID: perm.GrantedByID,
		CreatedAt:   perm.CreatedAt,
	}, nil
}

// OwnsEmployee informa si el empleado pertenece *actualmente* a la empresa
// dada. Lo usan los guards HTTP para limitar al dueño a sus propios empleados.
func (uc *EmployeePermissionUseCase) OwnsEmployee(ctx context.Context, employeeID, companyID string) (bool, error) {
	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return false, err
	}
	if employee == nil {
		return false, domain.ErrEmployeeNotFound
	}
	return employee.CompanyID == companyID, nil
}

// Revoke elimina el permiso del empleado sobre el módulo si existe.
// Idempotente: revocar un permiso ausente es un éxito sin efecto.
func (uc *EmployeePermissionUseCase) Revoke(ctx context.Context, employeeID, moduleID string) error {
	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrEmployeeNotFound
	}
	_, err = uc.permRepo.Delete(ctx, employeeID, moduleID)
	return err
}

// ListForEmployee devuelve los permisos del empleado con metadatos del módulo.
// No re-valida el invariante en la lectura: una fila huérfana (aún no barrida)
// se lista tal cual; quien necesite una vista estricta debe disparar antes la
// reconciliación.
func (uc *EmployeePermissionUseCase) ListForEmployee(ctx context.Context, employeeID string) ([]dto.EmployeePermissionResponse, error) {
	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	views, err := uc.permRepo.ListByUser(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeePermissionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.EmployeePermissionResponse{
			ID:     v.ID,
			UserID: v.UserID,
			Module: dto.ModuleResponse{
				ID:   v.ModuleID,
				Slug: v.ModuleSlug,
				Name: v.ModuleName,
			},
			CanRead:     v.CanRead,
			CanWrite:    v.CanWrite,
			CanDelete:   v.CanDelete,
			GrantedByID: v.GrantedByID,
			CreatedAt:   v.CreatedAt,
		})
	}
	return out, nil
}
