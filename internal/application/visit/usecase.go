// Package visit orquesta el ciclo de vida de una visita: reglas del dominio,
// persistencia condicional, fotos y registro de actividad.
package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/visit-pipeline/internal/application/dto"
	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
	rules "github.com/jhoicas/visit-pipeline/internal/domain/visit"
	"github.com/jhoicas/visit-pipeline/pkg/logger"
)

// Config parámetros del caso de uso que no dependen de la petición.
type Config struct {
	Location        *time.Location   // zona usada para calcular "hoy"; nil = UTC
	MaxPhotoBytes   int64            // 0 = rules.DefaultMaxPhotoBytes
	Now             func() time.Time // nil = time.Now
	ActivityTimeout time.Duration    // tope de cada escritura de actividad; 0 = DefaultActivityTimeout
}

// DefaultActivityTimeout tope por defecto del registro de actividad.
const DefaultActivityTimeout = 2 * time.Second

// UseCase casos de uso de visitas. El actor llega explícito en cada llamada.
type UseCase struct {
	visits   repository.VisitRepository
	users    repository.UserRepository
	activity repository.ActivityLog
	photos   PhotoStore
	passes   PassGenerator
	log      *logger.Logger
	cfg      Config
}

// NewUseCase construye el caso de uso. activity, photos y passes pueden ser nil.
func NewUseCase(
	visits repository.VisitRepository,
	users repository.UserRepository,
	activity repository.ActivityLog,
	photos PhotoStore,
	passes PassGenerator,
	log *logger.Logger,
	cfg Config,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ActivityTimeout <= 0 {
		cfg.ActivityTimeout = DefaultActivityTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		visits:   visits,
		users:    users,
		activity: activity,
		photos:   photos,
		passes:   passes,
		log:      log.Component("visits"),
		cfg:      cfg,
	}
}

// Now instante actual en la zona de la aplicación.
func (uc *UseCase) Now() time.Time {
	return uc.cfg.Now().In(uc.cfg.Location)
}

// PhotoURL URL pública de una foto; vacía si no hay almacenamiento configurado.
func (uc *UseCase) PhotoURL(key string) string {
	if uc.photos == nil || key == "" {
		return ""
	}
	return uc.photos.URL(key)
}

// Create valida y registra una visita nueva en estado pending.
func (uc *UseCase) Create(ctx context.Context, actor *entity.Actor, req rules.Request) (*dto.VisitResponse, error) {
	if err := rules.CanCreate(actor); err != nil {
		return nil, err
	}
	in, err := rules.ValidateRequest(req, rules.Options{
		Today:         uc.Now(),
		MaxPhotoBytes: uc.cfg.MaxPhotoBytes,
		RequirePhoto:  true,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.checkHost(ctx, actor, in.HostID); err != nil {
		return nil, err
	}

	photoKey, err := uc.savePhoto(ctx, in.Photo)
	if err != nil {
		return nil, err
	}

	v := &entity.Visit{
		Kind:      in.Kind,
		VisitorID: actor.ID,
		HostID:    in.HostID,
		VisitDate: in.VisitDate,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    entity.StatusPending,
		Purpose:   in.Purpose,
		Notes:     in.Notes,
		PhotoPath: photoKey,
	}
	if err := uc.visits.Create(ctx, v); err != nil {
		uc.discardPhoto(ctx, photoKey)
		return nil, err
	}

	uc.record(ctx, actor, entity.ActionVisitCreate, fmt.Sprintf("visit %d created (%s)", v.ID, v.Kind))
	uc.log.Info().Int64("visit_id", v.ID).Int64("actor_id", actor.ID).Str("kind", string(v.Kind)).Msg("visita creada")
	out := ToResponse(v, uc.PhotoURL)
	return &out, nil
}

// Update reemplaza los campos editables de una visita pendiente del propio actor.
// La variante no cambia al editar. Una foto nueva reemplaza a la anterior.
func (uc *UseCase) Update(ctx context.Context, actor *entity.Actor, id int64, req rules.Request) (*dto.VisitResponse, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rules.CanEdit(actor, current); err != nil {
		return nil, err
	}

	req.Kind = current.Kind
	in, err := rules.ValidateRequest(req, rules.Options{
		Today:         uc.Now(),
		MaxPhotoBytes: uc.cfg.MaxPhotoBytes,
		RequirePhoto:  current.PhotoPath == "",
	})
	if err != nil {
		return nil, err
	}
	if err := uc.checkHost(ctx, actor, in.HostID); err != nil {
		return nil, err
	}

	newKey, err := uc.savePhoto(ctx, in.Photo)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.HostID = in.HostID
	updated.VisitDate = in.VisitDate
	updated.StartTime = in.StartTime
	updated.EndTime = in.EndTime
	updated.Purpose = in.Purpose
	updated.Notes = in.Notes
	updated.Status = entity.StatusPending
	if newKey != "" {
		updated.PhotoPath = newKey
	}

	if err := uc.visits.UpdateIfPending(ctx, &updated); err != nil {
		uc.discardPhoto(ctx, newKey)
		return nil, err
	}
	if newKey != "" && current.PhotoPath != "" {
		uc.discardPhoto(ctx, current.PhotoPath)
	}

	uc.record(ctx, actor, entity.ActionVisitUpdate, fmt.Sprintf("visit %d updated", id))
	out := ToResponse(&updated, uc.PhotoURL)
	return &out, nil
}

// Approve pending → approved.
func (uc *UseCase) Approve(ctx context.Context, actor *entity.Actor, id int64) (*dto.VisitResponse, error) {
	return uc.transition(ctx, actor, id, entity.ActionVisitApprove, func(v *entity.Visit) (rules.Transition, error) {
		return rules.Approve(actor, v)
	})
}

// Reject pending → rejected; el motivo se anexa a las notas.
func (uc *UseCase) Reject(ctx context.Context, actor *entity.Actor, id int64, reason string) (*dto.VisitResponse, error) {
	return uc.transition(ctx, actor, id, entity.ActionVisitReject, func(v *entity.Visit) (rules.Transition, error) {
		return rules.Reject(actor, v, reason)
	})
}

// Complete approved → completed.
func (uc *UseCase) Complete(ctx context.Context, actor *entity.Actor, id int64) (*dto.VisitResponse, error) {
	return uc.transition(ctx, actor, id, entity.ActionVisitComplete, func(v *entity.Visit) (rules.Transition, error) {
		return rules.Complete(actor, v)
	})
}

// transition valida contra la foto actual y aplica el cambio como compare-and-set.
// Si otra petición ganó la carrera entre la lectura y el UPDATE, el repositorio
// devuelve ErrInvalidTransition y nada cambia.
func (uc *UseCase) transition(
	ctx context.Context,
	actor *entity.Actor,
	id int64,
	action string,
	decide func(v *entity.Visit) (rules.Transition, error),
) (*dto.VisitResponse, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := decide(current)
	if err != nil {
		return nil, err
	}
	updated, err := uc.visits.ApplyTransition(ctx, t)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			uc.log.Info().Int64("visit_id", id).Int64("actor_id", actor.ID).Str("action", action).Msg("transición perdida por concurrencia")
		}
		return nil, err
	}

	uc.record(ctx, actor, action, fmt.Sprintf("visit %d: %s -> %s", id, t.From, t.To))
	out := ToResponse(updated, uc.PhotoURL)
	return &out, nil
}

// Get detalle de una visita: visitante, anfitrión o permiso security.
func (uc *UseCase) Get(ctx context.Context, actor *entity.Actor, id int64) (*dto.VisitDetailResponse, error) {
	d, err := uc.loadDetails(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := rules.CanView(actor, &d.Visit); err != nil {
		return nil, err
	}
	out := ToDetailResponse(actor, d, uc.PhotoURL)
	return &out, nil
}

// Pass genera el pase PDF de una visita aprobada o completada.
func (uc *UseCase) Pass(ctx context.Context, actor *entity.Actor, id int64) ([]byte, string, error) {
	d, err := uc.loadDetails(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if err := rules.CanDownloadPass(actor, &d.Visit); err != nil {
		return nil, "", err
	}
	if uc.passes == nil {
		return nil, "", fmt.Errorf("visit: generador de pases no configurado")
	}
	pdf, err := uc.passes.GeneratePass(ctx, d)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("visit-pass-%d.pdf", d.ID), nil
}

func (uc *UseCase) load(ctx context.Context, id int64) (*entity.Visit, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	v, err := uc.visits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (uc *UseCase) loadDetails(ctx context.Context, actor *entity.Actor, id int64) (*entity.VisitDetails, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	d, err := uc.visits.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// checkHost el anfitrión debe existir, poder recibir visitas y no ser el propio visitante.
func (uc *UseCase) checkHost(ctx context.Context, actor *entity.Actor, hostID *int64) error {
	if hostID == nil {
		return nil
	}
	if *hostID == actor.ID {
		return domain.Invalid("host_id", "no puede ser su propio anfitrión")
	}
	host, err := uc.users.GetByID(ctx, *hostID)
	if err != nil {
		return err
	}
	if host == nil || !IsPotentialHost(host) {
		return domain.Invalid("host_id", "el anfitrión no existe o no recibe visitas")
	}
	return nil
}

// IsPotentialHost managers y employees pueden recibir visitas.
func IsPotentialHost(u *entity.User) bool {
	return u.Role == entity.RoleManager || u.Role == entity.RoleEmployee
}

func (uc *UseCase) savePhoto(ctx context.Context, p *rules.ValidatedPhoto) (string, error) {
	if p == nil {
		return "", nil
	}
	if uc.photos == nil {
		return "", fmt.Errorf("visit: almacenamiento de fotos no configurado: %w", domain.ErrPersistence)
	}
	key, err := uc.photos.Save(ctx, p.StorageName, p.MIME, p.Data)
	if err != nil {
		return "", fmt.Errorf("visit: guardar foto: %w: %w", domain.ErrPersistence, err)
	}
	return key, nil
}

// discardPhoto borra una foto sin propagar el error.
func (uc *UseCase) discardPhoto(ctx context.Context, key string) {
	if key == "" || uc.photos == nil {
		return
	}
	if err := uc.photos.Delete(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("photo", key).Msg("no se pudo borrar la foto")
	}
}

// record registra actividad; un fallo solo se loguea. La escritura no hereda la
// cancelación de la petición y queda acotada por ActivityTimeout.
func (uc *UseCase) record(ctx context.Context, actor *entity.Actor, action, details string) {
	if uc.activity == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.ActivityTimeout)
	defer cancel()
	err := uc.activity.Record(ctx, entity.ActivityEntry{
		UserID:    actor.ID,
		Action:    action,
		Details:   details,
		IPAddress: actor.IP,
		CreatedAt: uc.cfg.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("actor_id", actor.ID).Str("action", action).Msg("registro de actividad")
	}
}
