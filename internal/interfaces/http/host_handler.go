package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/visit-pipeline/internal/application/usecase"
)

// HostHandler directorio de anfitriones.
type HostHandler struct {
	uc *usecase.HostUseCase
}

// NewHostHandler construye el handler.
func NewHostHandler(uc *usecase.HostUseCase) *HostHandler {
	return &HostHandler{uc: uc}
}

// List godoc
// @Summary      Anfitriones disponibles
// @Tags         hosts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.HostResponse
// @Router       /api/hosts [get]
func (h *HostHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListHosts(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
