package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/visit-pipeline/internal/application/auth"
	"github.com/jhoicas/visit-pipeline/internal/application/dto"
	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/infrastructure/memory"
	"github.com/jhoicas/visit-pipeline/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	s := memory.NewStore()
	s.AddUser(entity.User{ID: 2, Username: "luis", FullName: "Luis Gómez", PasswordHash: string(hash), Role: entity.RoleManager, Position: entity.Position{Name: "Gerente", Level: 1}})
	s.AddUser(entity.User{ID: 3, Username: "sara", PasswordHash: string(hash), Role: entity.RoleSecurity})
	s.AddUser(entity.User{ID: 9, Username: "ghost", PasswordHash: string(hash), Role: "visitor"})

	uc := auth.NewAuthUseCase(s.Users(), s, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, nil)
	return uc, s
}

func TestLogin_OK(t *testing.T) {
	uc, s := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: " luis ", Password: "s3cret"}, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "pending", out.LandingView)
	assert.Equal(t, "Gerente", out.User.Position)

	userID, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), userID)
	assert.Equal(t, entity.RoleManager, role)

	acts := s.Activity()
	require.Len(t, acts, 1)
	assert.Equal(t, entity.ActionLogin, acts[0].Action)
	assert.Equal(t, "10.0.0.1", acts[0].IPAddress)
}

func TestLogin_VistaInicialSeguridad(t *testing.T) {
	uc, _ := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "sara", Password: "s3cret"}, "")
	require.NoError(t, err)
	assert.Equal(t, "today", out.LandingView)
}

func TestLogin_Credenciales(t *testing.T) {
	uc, s := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "luis", Password: "otra"}, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "s3cret"}, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "", Password: "x"}, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "s3cret"}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden, "un rol desconocido no inicia sesión")

	assert.Empty(t, s.Activity())
}

func TestLogin_FalloRepositorio(t *testing.T) {
	uc, s := newAuth(t)
	s.FailReads = errors.New("db caída")
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "luis", Password: "s3cret"}, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogoutYMe(t *testing.T) {
	uc, s := newAuth(t)
	actor := &entity.Actor{ID: 2, Role: entity.RoleManager, IP: "10.0.0.2"}

	me, err := uc.Me(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, "luis", me.Username)

	require.NoError(t, uc.Logout(context.Background(), actor))
	acts := s.Activity()
	require.Len(t, acts, 1)
	assert.Equal(t, entity.ActionLogout, acts[0].Action)

	assert.ErrorIs(t, uc.Logout(context.Background(), nil), domain.ErrUnauthenticated)

	_, err = uc.Me(context.Background(), &entity.Actor{ID: 77, Role: entity.RoleEmployee})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
