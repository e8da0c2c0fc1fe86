package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jash90/accounting-app-sub014/internal/application/access"
	"github.com/jash90/accounting-app-sub014/internal/application/auth"
	"github.com/jash90/accounting-app-sub014/internal/application/usecase"
	"github.com/jash90/accounting-app-sub014/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccessUC  *access.CompanyAccessUseCase
	PermUC    *access.EmployeePermissionUseCase
	CleanupUC *access.CleanupUseCase
	CompanyUC *usecase.CompanyUseCase
	UserUC    *usecase.UserUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrOwner := RequireRole(entity.RoleAdmin, entity.RoleOwner)

	// Motor de acceso a módulos
	modules := protected.Group("/modules")
	moduleHandler := NewModuleHandler(deps.AccessUC, deps.PermUC, deps.CleanupUC)
	modules.Get("/", moduleHandler.ListCatalog)

	// Autodiagnóstico: cualquier usuario puede verificar el acceso de su
	// propia empresa (misma respuesta que evalúa RequireModule).
	modules.Get("/access/:moduleSlug", moduleHandler.CheckAccess)

	// Ledger empresa-módulo: solo el operador de plataforma
	modules.Post("/companies/:companyId/:moduleId", adminOnly, moduleHandler.GrantToCompany)
	modules.Delete("/companies/:companyId/:moduleId", adminOnly, moduleHandler.RevokeFromCompany)
	modules.Get("/companies/:companyId", adminOrOwner, moduleHandler.ListCompanyModules)

	// Permisos de empleados: el dueño sobre sus empleados (o el operador)
	modules.Post("/employees/:employeeId/:moduleSlug", adminOrOwner, moduleHandler.GrantToEmployee)
	modules.Delete("/employees/:employeeId/:moduleId", adminOrOwner, moduleHandler.RevokeFromEmployee)
	modules.Get("/employees/:employeeId", adminOrOwner, moduleHandler.ListEmployeePermissions)

	// Barrido de reconciliación: solo el operador de plataforma
	modules.Post("/cleanup/orphaned-permissions", adminOnly, moduleHandler.CleanupOrphaned)

	// Directorio de empresas
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", adminOnly, companyHandler.Create)
	companies.Get("/", adminOnly, companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Directorio de usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", adminOrOwner, userHandler.List)
	users.Put("/:id/company", adminOnly, userHandler.Reassign)
}
