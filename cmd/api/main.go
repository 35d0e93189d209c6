// @title                       MIDA Inventario de Químicos API
// @version                     1.0
// @description                 Inventario de productos químicos, certificados de tratamiento y programación de tratamientos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/mida-panama/inventario-quimicos-api/docs"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/auth"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
	infrapdf "github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/pdf"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/postgres"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/redisstore"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/mida-panama/inventario-quimicos-api/internal/interfaces/http"
	"github.com/mida-panama/inventario-quimicos-api/pkg/config"
	"github.com/mida-panama/inventario-quimicos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
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

	if cfg.DB.Migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	chemicalRepo := postgres.NewChemicalRepository(pool)
	certificateRepo := postgres.NewCertificateRepository(pool)
	treatmentRepo := postgres.NewTreatmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	userUC := usecase.NewUserUseCase(userRepo)
	if cfg.Seed.DefaultAdmin {
		created, err := userUC.EnsureAdmin(ctx, cfg.Seed.Username, cfg.Seed.Password, cfg.Seed.FullName, cfg.Seed.Email)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		log.Info().Bool("created", created).Str("username", cfg.Seed.Username).Msg("administrador inicial")
	}

	// Rate limiter: Redis si está configurado, memoria local si no
	var limiterStorage fiber.Storage
	if cfg.Redis.URL != "" {
		rdb, err := redisstore.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		limiterStorage = redisstore.New(rdb, cfg.App.Name+":ratelimit:")
	}

	renderer := infrapdf.NewRenderer(nil)
	exporter := xmlexport.NewExporter()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AuthUC:        authUC,
		InventoryUC:   usecase.NewInventoryUseCase(chemicalRepo),
		CertificateUC: usecase.NewCertificateUseCase(certificateRepo, renderer),
		TreatmentUC:   usecase.NewTreatmentUseCase(treatmentRepo, txRunner),
		UserUC:        userUC,
		ReportUC:      analytics.NewReportUseCase(chemicalRepo, certificateRepo, treatmentRepo, renderer, exporter),
		DashboardUC:   analytics.NewDashboardUseCase(chemicalRepo, certificateRepo, treatmentRepo),
		RateLimit: httpRouter.RateLimit{
			Max:      cfg.RateLimit.Max,
			Window:   cfg.RateLimit.Window,
			LoginMax: cfg.RateLimit.LoginMax,
			Storage:  limiterStorage,
		},
		CORSOrigins: cfg.HTTP.CORSOrigins,
		AppName:     cfg.App.Name,
		Logger:      log,
		// Swagger UI en local: http://localhost:<port>/docs
		Docs: swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "MIDA Inventario de Químicos API",
		}),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
