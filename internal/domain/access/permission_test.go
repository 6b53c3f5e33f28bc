package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/access"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestHasPermission recorre la matriz completa actor × requerido.
// admin tiene todo; manager incluye employee; security y employee solo a sí mismos.
// ──────────────────────────────────────────────────────────────────────────────
func TestHasPermission(t *testing.T) {
	matrix := map[string]map[string]bool{
		entity.RoleAdmin:    {entity.RoleAdmin: true, entity.RoleManager: true, entity.RoleEmployee: true, entity.RoleSecurity: true},
		entity.RoleManager:  {entity.RoleAdmin: false, entity.RoleManager: true, entity.RoleEmployee: true, entity.RoleSecurity: false},
		entity.RoleEmployee: {entity.RoleAdmin: false, entity.RoleManager: false, entity.RoleEmployee: true, entity.RoleSecurity: false},
		entity.RoleSecurity: {entity.RoleAdmin: false, entity.RoleManager: false, entity.RoleEmployee: false, entity.RoleSecurity: true},
	}
	for actor, row := range matrix {
		for required, want := range row {
			assert.Equal(t, want, access.HasPermission(actor, required), "%s → %s", actor, required)
		}
	}
}

func TestHasPermission_RolDesconocido(t *testing.T) {
	for _, required := range access.Roles() {
		assert.False(t, access.HasPermission("", required))
		assert.False(t, access.HasPermission("visitor", required))
	}
	assert.False(t, access.HasPermission(entity.RoleAdmin, "visitor"))
}

func TestRequireRole(t *testing.T) {
	assert.ErrorIs(t, access.RequireRole(nil, entity.RoleEmployee), domain.ErrUnauthenticated)
	assert.ErrorIs(t, access.RequireRole(&entity.Actor{}, entity.RoleEmployee), domain.ErrUnauthenticated)
	assert.ErrorIs(t, access.RequireRole(&entity.Actor{ID: 1, Role: entity.RoleSecurity}, entity.RoleEmployee), domain.ErrForbidden)
	assert.NoError(t, access.RequireRole(&entity.Actor{ID: 1, Role: entity.RoleManager}, entity.RoleEmployee))
}

func TestIsValidRole(t *testing.T) {
	for _, r := range access.Roles() {
		assert.True(t, access.IsValidRole(r))
	}
	assert.False(t, access.IsValidRole("Admin"))
	assert.False(t, access.IsValidRole(""))
}

func TestLandingView(t *testing.T) {
	assert.Equal(t, "pending", access.LandingView(entity.RoleManager))
	assert.Equal(t, "today", access.LandingView(entity.RoleSecurity))
	assert.Equal(t, "default", access.LandingView(entity.RoleEmployee))
	assert.Equal(t, "default", access.LandingView(entity.RoleAdmin))
}
