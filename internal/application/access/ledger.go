package access

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jash90/accounting-app-sub014/internal/application/dto"
	"github.com/jash90/accounting-app-sub014/internal/domain"
	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

// CompanyAccessUseCase administra el ledger empresa-módulo: qué empresa tiene
// qué módulo habilitado. Es el único hecho autoritativo sobre el acceso de una
// empresa a un módulo; los permisos de empleado dependen de él.
type CompanyAccessUseCase struct {
	moduleRepo  repository.ModuleRepository
	companyRepo repository.CompanyRepository
	grantRepo   repository.CompanyModuleRepository
	tx          TxRunner
}

// NewCompanyAccessUseCase construye el caso de uso del ledger.
func NewCompanyAccessUseCase(
	moduleRepo repository.ModuleRepository,
	companyRepo repository.CompanyRepository,
	grantRepo repository.CompanyModuleRepository,
	tx TxRunner,
) *CompanyAccessUseCase {
	return &CompanyAccessUseCase{
		moduleRepo:  moduleRepo,
		companyRepo: companyRepo,
		grantRepo:   grantRepo,
		tx:          tx,
	}
}

// ListCatalog devuelve el catálogo completo de módulos de la plataforma.
func (uc *CompanyAccessUseCase) ListCatalog(ctx context.Context) ([]dto.ModuleResponse, error) {
	modules, err := uc.moduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, toModuleResponse(m))
	}
	return out, nil
}

// Grant habilita el módulo para la empresa. Idempotente: re-otorgar un módulo
// ya habilitado es un éxito sin efecto. Devuelve ErrCompanyNotFound si la
// empresa no existe y ErrModuleNotFound si el módulo no existe o está inactivo.
func (uc *CompanyAccessUseCase) Grant(ctx context.Context, companyID, moduleID string) (*dto.CompanyModuleResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	module, err := uc.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil || !module.IsActive {
		return nil, domain.ErrModuleNotFound
	}

	now := time.Now()
	grant := &entity.CompanyModule{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ModuleID:  moduleID,
		IsEnabled: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.grantRepo.Upsert(ctx, grant); err != nil {
		return nil, err
	}
	return toCompanyModuleResponse(grant, module), nil
}

// Revoke deshabilita el módulo para la empresa y, en la MISMA transacción,
// borra todos los permisos de empleados de esa empresa sobre ese módulo.
// Un grant revocado sin cascada rompería el invariante en silencio, así que
// cualquier fallo revierte ambas escrituras (ErrCascadeFailed).
//
// Revocar un grant inexistente o ya deshabilitado es idempotente: la cascada
// corre igual por si quedaron huérfanos de un fallo parcial anterior.
func (uc *CompanyAccessUseCase) Revoke(ctx context.Context, companyID, moduleID string) (*dto.CompanyModuleResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	// Revocar debe funcionar también para módulos ya desactivados a nivel
	// plataforma, por eso aquí no se exige IsActive.
	module, err := uc.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, domain.ErrModuleNotFound
	}

	now := time.Now()
	grant := &entity.CompanyModule{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ModuleID:  moduleID,
		IsEnabled: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(
		grantRepo repository.CompanyModuleRepository,
		permRepo repository.UserModulePermissionRepository,
	) error {
		if err := grantRepo.Upsert(ctx, grant); err != nil {
			return err
		}
		if _, err := permRepo.DeleteByCompanyAndModule(ctx, companyID, moduleID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCascadeFailed, err)
	}
	return toCompanyModuleResponse(grant, module), nil
}

// ListForCompany devuelve todos los grants de la empresa, habilitados y
// deshabilitados, con metadatos del módulo.
func (uc *CompanyAccessUseCase) ListForCompany(ctx context.Context, companyID string) ([]dto.CompanyModuleResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	grants, err := uc.grantRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyModuleResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, dto.CompanyModuleResponse{
			ID:        g.ID,
			CompanyID: g.CompanyID,
			Module: dto.ModuleResponse{
				ID:       g.ModuleID,
				Slug:     g.ModuleSlug,
				Name:     g.ModuleName,
				IsActive: g.ModuleIsActive,
			},
			IsEnabled: g.IsEnabled,
			CreatedAt: g.CreatedAt,
		})
	}
	return out, nil
}

// HasEnabledModule informa si la empresa tiene el módulo (por slug) habilitado
// y activo a nivel plataforma. Lo consume el middleware de gating de features.
// Devuelve false sin error si el módulo no está contratado; error solo ante
// fallos de infraestructura.
func (uc *CompanyAccessUseCase) HasEnabledModule(ctx context.Context, companyID, moduleSlug string) (bool, error) {
	if companyID == "" || moduleSlug == "" {
		return false, fmt.Errorf("access: companyID y moduleSlug son obligatorios")
	}
	module, err := uc.moduleRepo.GetBySlug(ctx, moduleSlug)
	if err != nil {
		return false, err
	}
	if module == nil || !module.IsActive {
		return false, nil
	}
	return uc.grantRepo.IsEnabled(ctx, companyID, module.ID)
}

func toModuleResponse(m *entity.Module) dto.ModuleResponse {
	return dto.ModuleResponse{
		ID:       m.ID,
		Slug:     m.Slug,
		Name:     m.Name,
		IsActive: m.IsActive,
	}
}

func toCompanyModuleResponse(g *entity.CompanyModule, m *entity.Module) *dto.CompanyModuleResponse {
	return &dto.CompanyModuleResponse{
		ID:        g.ID,
		CompanyID: g.CompanyID,
		Module:    toModuleResponse(m),
		IsEnabled: g.IsEnabled,
		CreatedAt: g.CreatedAt,
	}
}
