package http

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/visit-pipeline/internal/application/dto"
	appvisit "github.com/jhoicas/visit-pipeline/internal/application/visit"
	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	rules "github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

// VisitHandler maneja el ciclo de vida de las visitas.
type VisitHandler struct {
	uc            *appvisit.UseCase
	maxPhotoBytes int64
}

// NewVisitHandler construye el handler. maxPhotoBytes acota la lectura del archivo subido.
func NewVisitHandler(uc *appvisit.UseCase, maxPhotoBytes int64) *VisitHandler {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = rules.DefaultMaxPhotoBytes
	}
	return &VisitHandler{uc: uc, maxPhotoBytes: maxPhotoBytes}
}

// Create godoc
// @Summary      Registrar visita
// @Tags         visits
// @Security     BearerAuth
// @Accept       json,mpfd
// @Produce      json
// @Param        body   body      dto.VisitRequest  true  "datos de la visita"
// @Param        photo  formData  file              false "foto (JPEG, PNG o GIF)"
// @Success      201    {object}  dto.VisitResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      413    {object}  dto.ErrorResponse
// @Failure      415    {object}  dto.ErrorResponse
// @Router       /api/visits [post]
func (h *VisitHandler) Create(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar visita pendiente
// @Tags         visits
// @Security     BearerAuth
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      int               true  "ID de la visita"
// @Param        body   body      dto.VisitRequest  true  "datos de la visita"
// @Success      200    {object}  dto.VisitResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/visits/{id} [put]
func (h *VisitHandler) Update(c *fiber.Ctx) error {
	id, err := visitID(c)
	if err != nil {
		return writeError(c, err)
	}
	req, err := h.parseRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), ActorFrom(c), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de visita
// @Tags         visits
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "ID de la visita"
// @Success      200  {object}  dto.VisitDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/{id} [get]
func (h *VisitHandler) Get(c *fiber.Ctx) error {
	id, err := visitID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), ActorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar visita
// @Tags         visits
// @Security     BearerAuth
// @Param        id   path      int  true  "ID de la visita"
// @Success      200  {object}  dto.VisitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/approve [post]
func (h *VisitHandler) Approve(c *fiber.Ctx) error {
	id, err := visitID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Approve(c.UserContext(), ActorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar visita
// @Tags         visits
// @Security     BearerAuth
// @Accept       json
// @Param        id    path      int                true  "ID de la visita"
// @Param        body  body      dto.RejectRequest  true  "motivo"
// @Success      200   {object}  dto.VisitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/reject [post]
func (h *VisitHandler) Reject(c *fiber.Ctx) error {
	id, err := visitID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.RejectRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Reject(c.UserContext(), ActorFrom(c), id, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar visita (salida)
// @Tags         visits
// @Security     BearerAuth
// @Param        id   path      int  true  "ID de la visita"
// @Success      200  {object}  dto.VisitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/complete [post]
func (h *VisitHandler) Complete(c *fiber.Ctx) error {
	id, err := visitID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Complete(c.UserContext(), ActorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pass godoc
// @Summary      Pase de visitante (PDF)
// @Tags         visits
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la visita"
// @Success      200
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/visits/{id}/pass [get]
func (h *VisitHandler) Pass(c *fiber.Ctx) error {
	id, err := visitID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.uc.Pass(c.UserContext(), ActorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// parseRequest acepta JSON o multipart/form-data (con archivo "photo").
func (h *VisitHandler) parseRequest(c *fiber.Ctx) (rules.Request, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.parseMultipart(c)
	}
	var in dto.VisitRequest
	if err := c.BodyParser(&in); err != nil {
		return rules.Request{}, errInvalidBody
	}
	return toRequest(in), nil
}

func (h *VisitHandler) parseMultipart(c *fiber.Ctx) (rules.Request, error) {
	in := dto.VisitRequest{
		Kind:      c.FormValue("kind"),
		VisitDate: c.FormValue("visit_date"),
		StartTime: c.FormValue("start_time"),
		EndTime:   c.FormValue("end_time"),
		Purpose:   c.FormValue("purpose"),
		Notes:     c.FormValue("notes"),
	}
	if raw := strings.TrimSpace(c.FormValue("host_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return rules.Request{}, domain.Invalid("host_id", "debe ser numérico")
		}
		in.HostID = &id
	}
	req := toRequest(in)

	fh, err := c.FormFile("photo")
	if err != nil {
		// sin archivo: la foto es opcional salvo en check-in
		return req, nil
	}
	f, err := fh.Open()
	if err != nil {
		return rules.Request{}, fmt.Errorf("abrir foto: %w", err)
	}
	defer f.Close()
	// el tamaño lo valida ValidateRequest después de los campos; un byte de más basta para detectar el exceso
	data, err := io.ReadAll(io.LimitReader(f, h.maxPhotoBytes+1))
	if err != nil {
		return rules.Request{}, fmt.Errorf("leer foto: %w", err)
	}
	req.Photo = &rules.PhotoUpload{Filename: fh.Filename, Data: data}
	return req, nil
}

func toRequest(in dto.VisitRequest) rules.Request {
	return rules.Request{
		Kind:      entity.Kind(strings.TrimSpace(in.Kind)),
		HostID:    in.HostID,
		VisitDate: in.VisitDate,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Purpose:   in.Purpose,
		Notes:     in.Notes,
	}
}

func visitID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
