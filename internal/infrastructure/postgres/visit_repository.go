package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
	"github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implementación del puerto VisitRepository sobre PostgreSQL.
type VisitRepo struct {
	db querier
}

// NewVisitRepository construye el adaptador de persistencia para visitas.
func NewVisitRepository(pool *pgxpool.Pool) *VisitRepo {
	return &VisitRepo{db: pool}
}

// Create persiste una visita nueva y completa ID, CreatedAt y UpdatedAt.
func (r *VisitRepo) Create(ctx context.Context, v *entity.Visit) error {
	const query = `
		INSERT INTO visits (kind, visitor_id, host_id, visit_date, start_time, end_time, status, purpose, notes, photo_path)
		VALUES ($1, $2, $3, $4, $5::text::time, $6::text::time, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		string(v.Kind), v.VisitorID, v.HostID, v.VisitDate, v.StartTime, v.EndTime,
		string(v.Status), v.Purpose, v.Notes, v.PhotoPath,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.Invalid("host_id", "el anfitrión no existe")
		case isCheckViolation(err):
			return domain.Invalid("end_time", "debe ser posterior a la hora de inicio")
		}
		return wrapErr("insert visit", err)
	}
	return nil
}

// GetByID obtiene una visita por ID; (nil, nil) si no existe.
func (r *VisitRepo) GetByID(ctx context.Context, id int64) (*entity.Visit, error) {
	row := r.db.QueryRow(ctx, `SELECT`+visitColumns+` FROM visits v WHERE v.id = $1`, id)
	v, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get visit by id", err)
	}
	return v, nil
}

// GetDetails obtiene una visita con los datos de visitante y anfitrión; (nil, nil) si no existe.
func (r *VisitRepo) GetDetails(ctx context.Context, id int64) (*entity.VisitDetails, error) {
	row := r.db.QueryRow(ctx, `SELECT`+visitDetailColumns+visitDetailJoins+` WHERE v.id = $1`, id)
	d, err := scanVisitDetails(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get visit details", err)
	}
	return d, nil
}

// updateIfPendingSQL reemplaza los campos editables solo si la visita sigue pendiente y es del visitante.
const updateIfPendingSQL = `
		UPDATE visits
		SET host_id = $3, visit_date = $4, start_time = $5::text::time, end_time = $6::text::time,
		    purpose = $7, notes = $8, photo_path = $9, status = 'pending', updated_at = now()
		WHERE id = $1 AND visitor_id = $2 AND status = 'pending'
		RETURNING status, updated_at`

func updateIfPendingArgs(v *entity.Visit) []any {
	return []any{v.ID, v.VisitorID, v.HostID, v.VisitDate, v.StartTime, v.EndTime, v.Purpose, v.Notes, v.PhotoPath}
}

// UpdateIfPending reemplaza los campos editables en una sola sentencia condicionada a
// (visitor_id, status = pending). Sin fila afectada: ErrNotFound o ErrInvalidTransition.
func (r *VisitRepo) UpdateIfPending(ctx context.Context, v *entity.Visit) error {
	var status string
	err := r.db.QueryRow(ctx, updateIfPendingSQL, updateIfPendingArgs(v)...).Scan(&status, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.missOrConflict(ctx, v.ID)
		}
		if isForeignKeyViolation(err) {
			return domain.Invalid("host_id", "el anfitrión no existe")
		}
		if isCheckViolation(err) {
			return domain.Invalid("end_time", "debe ser posterior a la hora de inicio")
		}
		return wrapErr("update visit", err)
	}
	v.Status = entity.Status(status)
	return nil
}

// applyTransitionSQL compare-and-set: status y anfitrión se verifican y cambian en la misma sentencia.
const applyTransitionSQL = `
		UPDATE visits v
		SET status = $3,
		    notes = CASE
		        WHEN $4::text = '' THEN v.notes
		        WHEN v.notes = '' THEN $4::text
		        ELSE v.notes || E'\n' || $4::text
		    END,
		    updated_at = now()
		WHERE v.id = $1 AND v.status = $2 AND ($5::bigint IS NULL OR v.host_id = $5::bigint)
		RETURNING` + visitColumns

func transitionArgs(t visit.Transition) []any {
	return []any{t.VisitID, string(t.From), string(t.To), t.AppendNote, t.HostID}
}

// ApplyTransition aplica t de forma atómica. De dos intentos concurrentes solo uno encuentra la fila.
func (r *VisitRepo) ApplyTransition(ctx context.Context, t visit.Transition) (*entity.Visit, error) {
	row := r.db.QueryRow(ctx, applyTransitionSQL, transitionArgs(t)...)
	v, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missOrConflict(ctx, t.VisitID)
		}
		return nil, wrapErr("apply transition", err)
	}
	return v, nil
}

// List ejecuta la consulta de una vista.
func (r *VisitRepo) List(ctx context.Context, q visit.QuerySpec) ([]entity.VisitDetails, error) {
	query, args, err := buildListQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list visits", err)
	}
	defer rows.Close()

	list := make([]entity.VisitDetails, 0)
	for rows.Next() {
		d, err := scanVisitDetails(rows)
		if err != nil {
			return nil, wrapErr("scan visit", err)
		}
		list = append(list, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list visits", err)
	}
	return list, nil
}

// Count cuenta visitas que cumplen el filtro.
func (r *VisitRepo) Count(ctx context.Context, f visit.Filter) (int, error) {
	query, args := buildCountQuery(f)
	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapErr("count visits", err)
	}
	return n, nil
}

const visitExistsSQL = `SELECT EXISTS(SELECT 1 FROM visits WHERE id = $1)`

// missOrConflict distingue, tras un UPDATE sin filas, entre visita inexistente y precondición perdida.
func (r *VisitRepo) missOrConflict(ctx context.Context, id int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, visitExistsSQL, id).Scan(&exists); err != nil {
		return wrapErr("check visit", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidTransition
}

func scanVisit(row pgx.Row) (*entity.Visit, error) {
	var v entity.Visit
	var kind, status string
	if err := row.Scan(
		&v.ID, &kind, &v.VisitorID, &v.HostID, &v.VisitDate,
		&v.StartTime, &v.EndTime,
		&status, &v.Purpose, &v.Notes, &v.PhotoPath, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	v.Kind = entity.Kind(kind)
	v.Status = entity.Status(status)
	return &v, nil
}

func scanVisitDetails(row pgx.Row) (*entity.VisitDetails, error) {
	var d entity.VisitDetails
	var kind, status string
	if err := row.Scan(
		&d.ID, &kind, &d.VisitorID, &d.HostID, &d.VisitDate,
		&d.StartTime, &d.EndTime,
		&status, &d.Purpose, &d.Notes, &d.PhotoPath, &d.CreatedAt, &d.UpdatedAt,
		&d.VisitorName, &d.VisitorEmail, &d.VisitorPosition,
		&d.HostName, &d.HostEmail, &d.HostPosition,
	); err != nil {
		return nil, err
	}
	d.Kind = entity.Kind(kind)
	d.Status = entity.Status(status)
	return &d, nil
}
