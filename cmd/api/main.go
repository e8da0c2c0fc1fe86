package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jash90/accounting-app-sub014/internal/application/access"
	"github.com/jash90/accounting-app-sub014/internal/application/auth"
	"github.com/jash90/accounting-app-sub014/internal/application/usecase"
	"github.com/jash90/accounting-app-sub014/internal/infrastructure/postgres"
	httpRouter "github.com/jash90/accounting-app-sub014/internal/interfaces/http"
	"github.com/jash90/accounting-app-sub014/pkg/config"
	"github.com/jash90/accounting-app-sub014/pkg/logger"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	moduleRepo := postgres.NewModuleRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	grantRepo := postgres.NewCompanyModuleRepository(pool)
	permRepo := postgres.NewUserModulePermissionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	accessUC := access.NewCompanyAccessUseCase(moduleRepo, companyRepo, grantRepo, txRunner)
	permUC := access.NewEmployeePermissionUseCase(moduleRepo, userRepo, grantRepo, permRepo)
	cleanupUC := access.NewCleanupUseCase(grantRepo, permRepo, access.CleanupConfig{
		IncludeInactiveModules: cfg.Cleanup.IncludeInactiveModules,
	}, log.Zerolog())
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccessUC:  accessUC,
		PermUC:    permUC,
		CleanupUC: cleanupUC,
		CompanyUC: companyUC,
		UserUC:    userUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	// Barrido programado de permisos huérfanos (opcional, CLEANUP_CRON)
	var scheduler *cron.Cron
	if cfg.Cleanup.Cron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Cleanup.Cron, func() {
			report, err := cleanupUC.Run(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("barrido programado falló")
				return
			}
			log.Info().
				Int64("deleted", report.DeletedCount).
				Int("groups", len(report.Companies)).
				Int("failures", len(report.Failures)).
				Msg("barrido programado completado")
		})
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Cleanup.Cron).Msg("expresión CLEANUP_CRON inválida")
		}
		scheduler.Start()
		log.Info().Str("cron", cfg.Cleanup.Cron).Msg("barrido de reconciliación programado")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
