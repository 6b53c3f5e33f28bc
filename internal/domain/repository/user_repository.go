package repository

import (
	"context"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// UserRepository puerto de lectura de usuarios (con rol y cargo unidos).
// Los métodos Get devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ListPotentialHosts usuarios manager/employee distintos de excludeID,
	// ordenados por nivel de cargo y nombre.
	ListPotentialHosts(ctx context.Context, excludeID int64) ([]*entity.User, error)
}
