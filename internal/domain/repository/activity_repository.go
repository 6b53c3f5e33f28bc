package repository

import (
	"context"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// ActivityLog destino append-only del registro de actividad.
// Quien lo llama ignora sus errores: un fallo aquí nunca invalida la operación.
type ActivityLog interface {
	Record(ctx context.Context, entry entity.ActivityEntry) error
}
