// Package dashboard resuelve las vistas y estadísticas del tablero según el actor.
//
// Lecturas: si el repositorio falla, la respuesta sale vacía (o en cero) con
// Degraded = true en lugar de propagar el error; el tablero nunca responde 500
// por una consulta caída.
package dashboard

import (
	"context"
	"time"

	appvisit "github.com/jhoicas/visit-pipeline/internal/application/visit"
	"github.com/jhoicas/visit-pipeline/internal/application/dto"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
	rules "github.com/jhoicas/visit-pipeline/internal/domain/visit"
	"github.com/jhoicas/visit-pipeline/pkg/logger"
)

// Config zona horaria, reloj y URL de fotos.
type Config struct {
	Location *time.Location
	Now      func() time.Time
	PhotoURL appvisit.URLFunc
}

// UseCase casos de uso del dashboard.
type UseCase struct {
	visits repository.VisitRepository
	log    *logger.Logger
	cfg    Config
}

// NewUseCase construye el caso de uso.
func NewUseCase(visits repository.VisitRepository, log *logger.Logger, cfg Config) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{visits: visits, log: log.Component("dashboard"), cfg: cfg}
}

// List visitas de la vista pedida. Un nombre desconocido es la vista por defecto;
// una vista sin permiso devuelve ErrForbidden.
func (uc *UseCase) List(ctx context.Context, actor *entity.Actor, viewName string) (*dto.DashboardResponse, error) {
	q, err := rules.ResolveView(actor, rules.ParseView(viewName), uc.cfg.Now().In(uc.cfg.Location))
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardResponse{View: string(q.View), Visits: []dto.VisitDetailResponse{}}

	list, err := uc.visits.List(ctx, q)
	if err != nil {
		uc.log.Error().Err(err).Int64("actor_id", actor.ID).Str("view", string(q.View)).Msg("consulta de vista degradada")
		out.Degraded = true
		return out, nil
	}
	for i := range list {
		out.Visits = append(out.Visits, appvisit.ToDetailResponse(actor, &list[i], uc.cfg.PhotoURL))
	}
	return out, nil
}

// Stats contadores permitidos para el actor, calculados en paralelo.
// Los contadores sin permiso quedan ausentes (nil), no en cero.
func (uc *UseCase) Stats(ctx context.Context, actor *entity.Actor) (*dto.DashboardStatsResponse, error) {
	queries, err := rules.ResolveStats(actor, uc.cfg.Now().In(uc.cfg.Location))
	if err != nil {
		return nil, err
	}

	type countResult struct {
		name string
		n    int
		err  error
	}
	ch := make(chan countResult, len(queries))
	for _, q := range queries {
		go func(q rules.StatQuery) {
			n, err := uc.visits.Count(ctx, q.Filter)
			ch <- countResult{name: q.Name, n: n, err: err}
		}(q)
	}

	out := &dto.DashboardStatsResponse{}
	for range queries {
		r := <-ch
		n := r.n
		if r.err != nil {
			uc.log.Error().Err(r.err).Int64("actor_id", actor.ID).Str("stat", r.name).Msg("estadística degradada")
			out.Degraded = true
			n = 0
		}
		switch r.name {
		case rules.StatPendingApprovals:
			out.PendingApprovals = &n
		case rules.StatTodayVisits:
			out.TodayVisits = &n
		case rules.StatPendingCheckins:
			out.PendingCheckins = &n
		case rules.StatTotalVisits:
			out.TotalVisits = &n
		}
	}
	return out, nil
}
