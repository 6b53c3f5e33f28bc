package usecase

import (
	"context"

	"github.com/jhoicas/visit-pipeline/internal/application/dto"
	"github.com/jhoicas/visit-pipeline/internal/domain/access"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
)

// HostUseCase directorio de anfitriones para el formulario de visitas.
type HostUseCase struct {
	repo repository.UserRepository
}

// NewHostUseCase construye el caso de uso con el puerto de usuarios.
func NewHostUseCase(repo repository.UserRepository) *HostUseCase {
	return &HostUseCase{repo: repo}
}

// ListHosts managers y employees excepto el propio actor, por nivel de cargo y nombre.
func (uc *HostUseCase) ListHosts(ctx context.Context, actor *entity.Actor) ([]dto.HostResponse, error) {
	if err := access.RequireRole(actor, entity.RoleEmployee); err != nil {
		return nil, err
	}
	users, err := uc.repo.ListPotentialHosts(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HostResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.HostResponse{
			ID:            u.ID,
			FullName:      u.DisplayName(),
			Email:         u.Email,
			Role:          u.Role,
			Position:      u.Position.Name,
			PositionLevel: u.Position.Level,
		})
	}
	return out, nil
}
