package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jash90/accounting-app-sub014/internal/application/dto"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar
// módulos. Lo implementa *access.CompanyAccessUseCase; la interfaz evita el
// import circular y facilita los tests.
type moduleChecker interface {
	HasEnabledModule(ctx context.Context, companyID, moduleSlug string) (bool, error)
}

// RequireModule devuelve un middleware Fiber que verifica si la empresa del
// token tiene el módulo habilitado. Debe usarse DESPUÉS de AuthMiddleware
// (necesita LocalCompanyID). Es la puerta de entrada de cada feature: las
// rutas del módulo de facturación, ZUS, email, etc. se montan detrás de él.
//
// Comportamiento:
//   - 403 Forbidden → módulo no contratado, deshabilitado o inactivo.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Sin company_id en el contexto → 401 (AuthMiddleware debería haberlo puesto).
func RequireModule(moduleSlug string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		enabled, err := checker.HasEnabledModule(c.Context(), companyID, moduleSlug)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}
		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleSlug + "' no está habilitado para esta empresa",
			})
		}
		return c.Next()
	}
}
