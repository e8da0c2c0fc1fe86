package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jash90/accounting-app-sub014/internal/application/access"
	"github.com/jash90/accounting-app-sub014/internal/application/dto"
	"github.com/jash90/accounting-app-sub014/internal/domain"
	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
)

// ModuleHandler maneja las peticiones HTTP del motor de acceso a módulos:
// ledger empresa-módulo, permisos de empleados y barrido de reconciliación.
type ModuleHandler struct {
	accessUC  *access.CompanyAccessUseCase
	permUC    *access.EmployeePermissionUseCase
	cleanupUC *access.CleanupUseCase
}

// NewModuleHandler construye el handler inyectando los casos de uso.
func NewModuleHandler(
	accessUC *access.CompanyAccessUseCase,
	permUC *access.EmployeePermissionUseCase,
	cleanupUC *access.CleanupUseCase,
) *ModuleHandler {
	return &ModuleHandler{accessUC: accessUC, permUC: permUC, cleanupUC: cleanupUC}
}

// ListCatalog godoc
// @Summary      Catálogo de módulos de la plataforma
// @Tags         modules
// @Produce      json
// @Success      200  {array}  dto.ModuleResponse
// @Router       /api/modules [get]
func (h *ModuleHandler) ListCatalog(c *fiber.Ctx) error {
	out, err := h.accessUC.ListCatalog(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// CheckAccess godoc
// @Summary      Consultar si la empresa del token tiene un módulo habilitado
// @Tags         modules
// @Produce      json
// @Param        moduleSlug  path  string  true  "Slug del módulo"
// @Success      200  {object}  dto.ModuleAccessResponse
// @Router       /api/modules/access/{moduleSlug} [get]
func (h *ModuleHandler) CheckAccess(c *fiber.Ctx) error {
	moduleSlug := c.Params("moduleSlug")
	companyID := GetCompanyID(c)
	if moduleSlug == "" || companyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "moduleSlug y company_id son requeridos"})
	}
	enabled, err := h.accessUC.HasEnabledModule(c.Context(), companyID, moduleSlug)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.ModuleAccessResponse{ModuleSlug: moduleSlug, CompanyID: companyID, Enabled: enabled})
}

// GrantToCompany godoc
// @Summary      Habilitar un módulo para una empresa
// @Tags         modules
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Param        moduleId   path  string  true  "ID del módulo"
// @Success      201  {object}  dto.CompanyModuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modules/companies/{companyId}/{moduleId} [post]
func (h *ModuleHandler) GrantToCompany(c *fiber.Ctx) error {
	companyID := c.Params("companyId")
	moduleID := c.Params("moduleId")
	if companyID == "" || moduleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "companyId y moduleId son requeridos"})
	}
	out, err := h.accessUC.Grant(c.Context(), companyID, moduleID)
	if err != nil {
		return moduleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RevokeFromCompany godoc
// @Summary      Revocar un módulo de una empresa (cascada sobre permisos de empleados)
// @Tags         modules
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Param        moduleId   path  string  true  "ID del módulo"
// @Success      200  {object}  dto.CompanyModuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/modules/companies/{companyId}/{moduleId} [delete]
func (h *ModuleHandler) RevokeFromCompany(c *fiber.Ctx) error {
	companyID := c.Params("companyId")
	moduleID := c.Params("moduleId")
	if companyID == "" || moduleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "companyId y moduleId son requeridos"})
	}
	out, err := h.accessUC.Revoke(c.Context(), companyID, moduleID)
	if err != nil {
		return moduleError(c, err)
	}
	return c.JSON(out)
}

// ListCompanyModules godoc
// @Summary      Listar los grants de módulos de una empresa (habilitados y deshabilitados)
// @Tags         modules
// @Produce      json
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.CompanyModuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modules/companies/{companyId} [get]
func (h *ModuleHandler) ListCompanyModules(c *fiber.Ctx) error {
	companyID := c.Params("companyId")
	if companyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "companyId es requerido"})
	}
	// El dueño solo puede consultar su propia empresa.
	if GetRole(c) == entity.RoleOwner && companyID != GetCompanyID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propia empresa"})
	}
	out, err := h.accessUC.ListForCompany(c.Context(), companyID)
	if err != nil {
		return moduleError(c, err)
	}
	return c.JSON(out)
}

// GrantToEmployee godoc
// @Summary      Otorgar o actualizar el permiso de un empleado sobre un módulo
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        employeeId  path  string  true  "ID del empleado"
// @Param        moduleSlug  path  string  true  "Slug del módulo"
// @Param        body  body  dto.GrantPermissionRequest  true  "flags read/write/delete"
// @Success      201  {object}  dto.EmployeePermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/modules/employees/{employeeId}/{moduleSlug} [post]
func (h *ModuleHandler) GrantToEmployee(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	moduleSlug := c.Params("moduleSlug")
	if employeeID == "" || moduleSlug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employeeId y moduleSlug son requeridos"})
	}
	if err := h.ensureEmployeeScope(c, employeeID); err != nil {
		return moduleError(c, err)
	}
	var in dto.GrantPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.permUC.Grant(c.Context(), employeeID, moduleSlug, in, GetUserID(c))
	if err != nil {
		return moduleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RevokeFromEmployee godoc
// @Summary      Revocar el permiso de un empleado sobre un módulo
// @Tags         modules
// @Param        employeeId  path  string  true  "ID del empleado"
// @Param        moduleId    path  string  true  "ID del módulo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modules/employees/{employeeId}/{moduleId} [delete]
func (h *ModuleHandler) RevokeFromEmployee(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	moduleID := c.Params("moduleId")
	if employeeID == "" || moduleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employeeId y moduleId son requeridos"})
	}
	if err := h.ensureEmployeeScope(c, employeeID); err != nil {
		return moduleError(c, err)
	}
	if err := h.permUC.Revoke(c.Context(), employeeID, moduleID); err != nil {
		return moduleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListEmployeePermissions godoc
// @Summary      Listar los permisos de módulos de un empleado
// @Tags         modules
// @Produce      json
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200  {array}  dto.EmployeePermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modules/employees/{employeeId} [get]
func (h *ModuleHandler) ListEmployeePermissions(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	if employeeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employeeId es requerido"})
	}
	if err := h.ensureEmployeeScope(c, employeeID); err != nil {
		return moduleError(c, err)
	}
	out, err := h.permUC.ListForEmployee(c.Context(), employeeID)
	if err != nil {
		return moduleError(c, err)
	}
	return c.JSON(out)
}

// CleanupOrphaned godoc
// @Summary      Barrido de reconciliación: eliminar permisos huérfanos en toda la plataforma
// @Tags         modules
// @Produce      json
// @Success      200  {object}  dto.CleanupReport
// @Router       /api/modules/cleanup/orphaned-permissions [post]
func (h *ModuleHandler) CleanupOrphaned(c *fiber.Ctx) error {
	report, err := h.cleanupUC.Run(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(report)
}

// ensureEmployeeScope limita a los dueños a los empleados de su propia
// empresa; el operador de plataforma no tiene restricción. Debe llamarse
// después de AuthMiddleware y RequireRole.
func (h *ModuleHandler) ensureEmployeeScope(c *fiber.Ctx, employeeID string) error {
	if GetRole(c) != entity.RoleOwner {
		return nil
	}
	owns, err := h.permUC.OwnsEmployee(c.Context(), employeeID, GetCompanyID(c))
	if err != nil {
		return err
	}
	if !owns {
		return domain.ErrForbidden
	}
	return nil
}

// moduleError mapea los errores de dominio del motor a respuestas HTTP.
func moduleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el empleado no pertenece a su empresa"})
	case errors.Is(err, domain.ErrModuleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "MODULE_NOT_FOUND", Message: "módulo no encontrado o inactivo"})
	case errors.Is(err, domain.ErrCompanyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "empresa no encontrada"})
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "EMPLOYEE_NOT_FOUND", Message: "empleado no encontrado"})
	case errors.Is(err, domain.ErrModuleNotEnabledForCompany):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MODULE_NOT_ENABLED", Message: "la empresa del empleado no tiene el módulo habilitado"})
	case errors.Is(err, domain.ErrCascadeFailed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CASCADE_FAILED", Message: "la revocación no pudo completarse; no se aplicó ningún cambio"})
	default:
		return internalError(c, err)
	}
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
