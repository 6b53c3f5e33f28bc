package repository

import (
	"context"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

// VisitRepository define el puerto de persistencia para Visit (DIP).
//
// Las escrituras sobre una visita existente son condicionales y atómicas: la fila solo
// cambia si su estado sigue cumpliendo la precondición al momento del commit. Si no,
// devuelven domain.ErrInvalidTransition sin modificar nada.
type VisitRepository interface {
	Create(ctx context.Context, v *entity.Visit) error
	GetByID(ctx context.Context, id int64) (*entity.Visit, error)
	GetDetails(ctx context.Context, id int64) (*entity.VisitDetails, error)

	// UpdateIfPending reemplaza fecha, horas, propósito, notas, anfitrión y foto, y fija
	// status = pending, solo si la visita pertenece a v.VisitorID y sigue pendiente.
	UpdateIfPending(ctx context.Context, v *entity.Visit) error

	// ApplyTransition aplica t como compare-and-set sobre (status, host_id).
	ApplyTransition(ctx context.Context, t visit.Transition) (*entity.Visit, error)

	List(ctx context.Context, q visit.QuerySpec) ([]entity.VisitDetails, error)
	Count(ctx context.Context, f visit.Filter) (int, error)
}
