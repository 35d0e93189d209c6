package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/auth"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/pkg/logger"
)

// RateLimit límites por IP. Storage nil = memoria del proceso.
type RateLimit struct {
	Max      int
	Window   time.Duration
	LoginMax int
	Storage  fiber.Storage
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	InventoryUC   *usecase.InventoryUseCase
	CertificateUC *usecase.CertificateUseCase
	TreatmentUC   *usecase.TreatmentUseCase
	UserUC        *usecase.UserUseCase
	ReportUC      *analytics.ReportUseCase
	DashboardUC   *analytics.DashboardUseCase
	RateLimit     RateLimit
	CORSOrigins   string
	AppName       string
	Logger        *logger.Logger
	// Docs middleware de Swagger UI; se monta antes de helmet.
	Docs fiber.Handler
}

// NewApp crea la aplicación Fiber con el manejador de errores, los middlewares comunes y todas las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ErrorHandler: ErrorHandler(deps.Logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(requestid.New(requestid.Config{ContextKey: LocalRequestID}))
	app.Use(RequestLogger(deps.Logger))
	app.Use(recover.New())
	if deps.Docs != nil {
		app.Use(deps.Docs)
	}
	app.Use(helmet.New())
	origins := deps.CORSOrigins
	if strings.TrimSpace(origins) == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "timestamp": time.Now().UTC()})
	})

	Router(app, deps)
	return app
}

func rateLimiter(limit int, window time.Duration, storage fiber.Storage, prefix string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return prefix + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Demasiadas solicitudes, intente más tarde")
		},
	})
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	rl := deps.RateLimit
	api := app.Group("/api")
	if rl.Max > 0 && rl.Window > 0 {
		api.Use(rateLimiter(rl.Max, rl.Window, rl.Storage, "api:"))
	}

	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	if rl.LoginMax > 0 {
		authGroup.Post("/login", rateLimiter(rl.LoginMax, time.Minute, rl.Storage, "login:"), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Get("/verify", requireAuth, authHandler.Verify)
	authGroup.Post("/change-password", requireAuth, authHandler.ChangePassword)

	// Inventario de químicos
	inv := NewInventoryHandler(deps.InventoryUC)
	invGroup := api.Group("/inventory", requireAuth)
	invRead := RequirePermission(entity.ResourceInventory, entity.ActionRead)
	invWrite := RequirePermission(entity.ResourceInventory, entity.ActionWrite)
	invGroup.Get("/areas", invRead, inv.Areas)
	invGroup.Get("/stats/overview", invRead, inv.Stats)
	invGroup.Get("/", invRead, inv.List)
	invGroup.Get("/:id", invRead, inv.GetByID)
	invGroup.Post("/", invWrite, inv.Create)
	invGroup.Put("/:id", invWrite, inv.Update)
	invGroup.Patch("/:id/discard", invWrite, inv.Discard)
	invGroup.Delete("/:id", RequirePermission(entity.ResourceInventory, entity.ActionDelete), inv.Delete)

	// Certificados
	cert := NewCertificateHandler(deps.CertificateUC)
	certGroup := api.Group("/certificates", requireAuth)
	certRead := RequirePermission(entity.ResourceCertificates, entity.ActionRead)
	certWrite := RequirePermission(entity.ResourceCertificates, entity.ActionWrite)
	certGroup.Get("/stats/overview", certRead, cert.Stats)
	certGroup.Get("/", certRead, cert.List)
	certGroup.Get("/:id/pdf", certRead, cert.PDF)
	certGroup.Get("/:id", certRead, cert.GetByID)
	certGroup.Post("/", certWrite, cert.Create)
	certGroup.Put("/:id", certWrite, cert.Update)
	certGroup.Delete("/:id", RequirePermission(entity.ResourceCertificates, entity.ActionDelete), cert.Delete)

	// Programación de tratamientos
	tr := NewTreatmentHandler(deps.TreatmentUC)
	trGroup := api.Group("/treatments", requireAuth)
	trRead := RequirePermission(entity.ResourceTreatments, entity.ActionRead)
	trWrite := RequirePermission(entity.ResourceTreatments, entity.ActionWrite)
	trGroup.Get("/stats/overview", trRead, tr.Stats)
	trGroup.Get("/upcoming/list", trRead, tr.Upcoming)
	trGroup.Get("/", trRead, tr.List)
	trGroup.Get("/:id", trRead, tr.GetByID)
	trGroup.Post("/", trWrite, tr.Create)
	trGroup.Put("/:id", trWrite, tr.Update)
	trGroup.Patch("/:id/status", trWrite, tr.UpdateStatus)
	trGroup.Delete("/:id", RequirePermission(entity.ResourceTreatments, entity.ActionDelete), tr.Delete)

	// Usuarios; /profile/me solo requiere sesión
	us := NewUserHandler(deps.UserUC)
	usGroup := api.Group("/users", requireAuth)
	usRead := RequirePermission(entity.ResourceUsers, entity.ActionRead)
	usWrite := RequirePermission(entity.ResourceUsers, entity.ActionWrite)
	usGroup.Get("/profile/me", us.Profile)
	usGroup.Put("/profile/me", us.UpdateProfile)
	usGroup.Get("/stats/overview", usRead, us.Stats)
	usGroup.Get("/", usRead, us.List)
	usGroup.Post("/", usWrite, us.Create)
	usGroup.Get("/:id/permissions", usRead, us.Permissions)
	usGroup.Put("/:id/permissions", usWrite, us.SetPermissions)
	usGroup.Patch("/:id/password", usWrite, us.ResetPassword)
	usGroup.Patch("/:id/toggle-status", usWrite, us.ToggleStatus)
	usGroup.Get("/:id", usRead, us.GetByID)
	usGroup.Put("/:id", usWrite, us.Update)
	usGroup.Delete("/:id", RequirePermission(entity.ResourceUsers, entity.ActionDelete), us.Delete)

	// Reportes y dashboard
	repRead := RequirePermission(entity.ResourceReports, entity.ActionRead)
	rep := NewReportHandler(deps.ReportUC)
	repGroup := api.Group("/reports", requireAuth, repRead)
	repGroup.Get("/types", rep.Types)
	repGroup.Get("/inventory", rep.Inventory)
	repGroup.Get("/certificates", rep.Certificates)
	repGroup.Get("/treatments", rep.Treatments)
	repGroup.Get("/monthly/:year/:month", rep.Monthly)

	dash := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", requireAuth, repRead, dash.GetSummary)
}
