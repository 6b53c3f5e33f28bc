package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/visit-pipeline/internal/application/usecase"
	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/infrastructure/memory"
)

func TestListHosts(t *testing.T) {
	s := memory.NewStore()
	s.AddUser(entity.User{ID: 1, FullName: "Zoe", Role: entity.RoleEmployee, Position: entity.Position{Level: 3}})
	s.AddUser(entity.User{ID: 2, FullName: "Bruno", Role: entity.RoleManager, Position: entity.Position{Level: 1}})
	s.AddUser(entity.User{ID: 3, FullName: "Andrea", Role: entity.RoleManager, Position: entity.Position{Level: 1}})
	s.AddUser(entity.User{ID: 4, FullName: "Sara", Role: entity.RoleSecurity, Position: entity.Position{Level: 2}})
	s.AddUser(entity.User{ID: 5, FullName: "Root", Role: entity.RoleAdmin, Position: entity.Position{Level: 0}})
	s.AddUser(entity.User{ID: 6, FullName: "Carla", Role: entity.RoleEmployee, Position: entity.Position{Level: 3}})

	uc := usecase.NewHostUseCase(s.Users())

	hosts, err := uc.ListHosts(context.Background(), &entity.Actor{ID: 6, Role: entity.RoleEmployee})
	require.NoError(t, err)
	var names []string
	for _, h := range hosts {
		names = append(names, h.FullName)
	}
	assert.Equal(t, []string{"Andrea", "Bruno", "Zoe"}, names, "sin security, admin ni el propio actor")

	_, err = uc.ListHosts(context.Background(), &entity.Actor{ID: 4, Role: entity.RoleSecurity})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListHosts(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
