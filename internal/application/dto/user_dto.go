package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse perfil del usuario (sin password).
type UserResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Position      string `json:"position"`
	PositionLevel int    `json:"position_level"`
}

// LoginResponse token JWT, usuario y vista inicial del dashboard según el rol.
type LoginResponse struct {
	Token       string       `json:"token"`
	User        UserResponse `json:"user"`
	LandingView string       `json:"landing_view"`
}

// HostResponse entrada del directorio de anfitriones.
type HostResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Position      string `json:"position"`
	PositionLevel int    `json:"position_level"`
}
