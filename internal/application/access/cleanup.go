package access

import (
	"context"

	"github.com/jash90/accounting-app-sub014/internal/application/dto"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
	"github.com/rs/zerolog"
)

// CleanupConfig política del barrido de reconciliación.
type CleanupConfig struct {
	// IncludeInactiveModules: si es true, un módulo desactivado a nivel
	// plataforma también deja huérfanos todos los permisos bajo él, aunque
	// la empresa conserve un grant habilitado. Por defecto false: esas filas
	// quedan intactas hasta que el módulo se elimine o el grant se revoque.
	IncludeInactiveModules bool
}

// CleanupUseCase es el barrido de reconciliación: encuentra y elimina los
// permisos que violan el invariante empresa-actual-con-grant, vengan de donde
// vengan (en particular de reasignaciones de empleados, que no pasan por el
// ledger). Es idempotente: tras una pasada limpia, la siguiente no borra nada.
type CleanupUseCase struct {
	grantRepo repository.CompanyModuleRepository
	permRepo  repository.UserModulePermissionRepository
	cfg       CleanupConfig
	log       zerolog.Logger
}

// NewCleanupUseCase construye el caso de uso del barrido.
func NewCleanupUseCase(
	grantRepo repository.CompanyModuleRepository,
	permRepo repository.UserModulePermissionRepository,
	cfg CleanupConfig,
	log zerolog.Logger,
) *CleanupUseCase {
	return &CleanupUseCase{grantRepo: grantRepo, permRepo: permRepo, cfg: cfg, log: log}
}

// Run agrupa todos los permisos existentes por (empresa actual del titular,
// módulo), verifica cada grupo contra el ledger y borra los grupos huérfanos.
//
// Cada grupo se evalúa y borra de forma independiente: un fallo de storage en
// un grupo se acumula en Failures y el barrido continúa con los demás, en vez
// de abortar la limpieza global. El check usa el mismo is_enabled autoritativo
// que una revocación en vivo, así que es seguro correrlo concurrente con
// grants/revokes: un grant que aterriza a mitad de barrido hace pasar el check
// de su grupo y el grupo se salta correctamente.
func (uc *CleanupUseCase) Run(ctx context.Context) (*dto.CleanupReport, error) {
	groups, err := uc.permRepo.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.CleanupReport{
		Companies: []dto.CleanupCompanyEntry{},
	}
	for _, g := range groups {
		enabled, err := uc.grantRepo.IsEnabled(ctx, g.CompanyID, g.ModuleID)
		if err != nil {
			uc.log.Error().Err(err).
				Str("company_id", g.CompanyID).
				Str("module_id", g.ModuleID).
				Msg("barrido: no se pudo verificar el grant del grupo")
			report.Failures = append(report.Failures, dto.CleanupFailureEntry{
				CompanyID: g.CompanyID,
				ModuleID:  g.ModuleID,
				Error:     err.Error(),
			})
			continue
		}
		orphaned := !enabled
		if uc.cfg.IncludeInactiveModules && !g.ModuleIsActive {
			orphaned = true
		}
		if !orphaned {
			continue
		}

		deleted, err := uc.permRepo.DeleteByCompanyAndModule(ctx, g.CompanyID, g.ModuleID)
		if err != nil {
			uc.log.Error().Err(err).
				Str("company_id", g.CompanyID).
				Str("module_id", g.ModuleID).
				Msg("barrido: no se pudo borrar el grupo huérfano")
			report.Failures = append(report.Failures, dto.CleanupFailureEntry{
				CompanyID: g.CompanyID,
				ModuleID:  g.ModuleID,
				Error:     err.Error(),
			})
			continue
		}
		report.DeletedCount += deleted
		report.Companies = append(report.Companies, dto.CleanupCompanyEntry{
			CompanyID:          g.CompanyID,
			CompanyName:        g.CompanyName,
			ModuleID:           g.ModuleID,
			ModuleName:         g.ModuleName,
			DeletedPermissions: deleted,
		})
		uc.log.Info().
			Str("company", g.CompanyName).
			Str("module", g.ModuleSlug).
			Int64("deleted", deleted).
			Msg("barrido: permisos huérfanos eliminados")
	}
	return report, nil
}
