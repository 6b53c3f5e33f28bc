package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/visit-pipeline/internal/application/dashboard"
)

// DashboardHandler expone las vistas y estadísticas del tablero.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// List godoc
// @Summary      Visitas del tablero
// @Description  view = default | pending (manager) | today (security) | checkins (security)
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        view  query     string  false  "vista"
// @Success      200   {object}  dto.DashboardResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), ActorFrom(c), c.Query("view"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Contadores del tablero según el rol
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
