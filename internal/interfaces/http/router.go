package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/visit-pipeline/internal/application/auth"
	"github.com/jhoicas/visit-pipeline/internal/application/dashboard"
	"github.com/jhoicas/visit-pipeline/internal/application/usecase"
	appvisit "github.com/jhoicas/visit-pipeline/internal/application/visit"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	VisitUC       *appvisit.UseCase
	DashboardUC   *dashboard.UseCase
	HostUC        *usecase.HostUseCase
	JWTSecret     string
	MaxPhotoBytes int64
}

// Router registra las rutas de la API.
// El gate por rol de cada ruta es grueso; las reglas finas (anfitrión, dueño, estado)
// las aplica el caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", authHandler.Me)

	// Anfitriones
	hostHandler := NewHostHandler(deps.HostUC)
	protected.Get("/hosts", RequireRole(entity.RoleEmployee), hostHandler.List)

	// Dashboard: el permiso de cada vista lo resuelve el caso de uso
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.List)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)

	// Visitas
	visits := protected.Group("/visits")
	visitHandler := NewVisitHandler(deps.VisitUC, deps.MaxPhotoBytes)
	visits.Post("/", RequireRole(entity.RoleEmployee), visitHandler.Create)
	visits.Get("/:id", visitHandler.Get)
	visits.Put("/:id", RequireRole(entity.RoleEmployee), visitHandler.Update)
	visits.Post("/:id/approve", visitHandler.Approve)
	visits.Post("/:id/reject", visitHandler.Reject)
	visits.Post("/:id/complete", RequireRole(entity.RoleSecurity), visitHandler.Complete)
	visits.Get("/:id/pass", visitHandler.Pass)
}
