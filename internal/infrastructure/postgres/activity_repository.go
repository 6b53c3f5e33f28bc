package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
)

var _ repository.ActivityLog = (*ActivityRepo)(nil)

// ActivityRepo registro de actividad en activity_logs; login y logout van a login_logs.
type ActivityRepo struct {
	db querier
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{db: pool}
}

// Record inserta la entrada. Los errores se devuelven envueltos; el caso de uso decide ignorarlos.
func (r *ActivityRepo) Record(ctx context.Context, e entity.ActivityEntry) error {
	if e.Action == entity.ActionLogin || e.Action == entity.ActionLogout {
		_, err := r.db.Exec(ctx,
			`INSERT INTO login_logs (user_id, action, ip_address) VALUES ($1, $2, $3)`,
			e.UserID, e.Action, e.IPAddress)
		if err != nil {
			return wrapErr("insert login log", err)
		}
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO activity_logs (user_id, action, details, ip_address) VALUES ($1, $2, $3, $4)`,
		e.UserID, e.Action, e.Details, e.IPAddress)
	if err != nil {
		return wrapErr("insert activity log", err)
	}
	return nil
}
