package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/visit-pipeline/internal/application/dto"
	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/access"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
	"github.com/jhoicas/visit-pipeline/pkg/jwt"
	"github.com/jhoicas/visit-pipeline/pkg/logger"
)

// activityTimeout tope del registro de login/logout.
const activityTimeout = 2 * time.Second

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	activity repository.ActivityLog
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. activity puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, activity repository.ActivityLog, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, activity: activity, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login verifica username/password, genera JWT y retorna token, usuario y vista inicial.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthenticated.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.Invalid("username", "es requerido")
	}
	if in.Password == "" {
		return nil, domain.Invalid("password", "es requerido")
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !access.IsValidRole(user.Role) {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.record(ctx, user.ID, entity.ActionLogin, ip)
	return &dto.LoginResponse{
		Token:       token,
		User:        *toUserResponse(user),
		LandingView: access.LandingView(user.Role),
	}, nil
}

// Logout registra la salida. Los tokens no tienen estado en el servidor.
func (uc *AuthUseCase) Logout(ctx context.Context, actor *entity.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	uc.record(ctx, actor.ID, entity.ActionLogout, actor.IP)
	return nil
}

// Me perfil del actor.
func (uc *AuthUseCase) Me(ctx context.Context, actor *entity.Actor) (*dto.UserResponse, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) record(ctx context.Context, userID int64, action, ip string) {
	if uc.activity == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), activityTimeout)
	defer cancel()
	err := uc.activity.Record(ctx, entity.ActivityEntry{
		UserID:    userID,
		Action:    action,
		IPAddress: ip,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("user_id", userID).Str("action", action).Msg("registro de login")
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          u.Role,
		Position:      u.Position.Name,
		PositionLevel: u.Position.Level,
	}
}
