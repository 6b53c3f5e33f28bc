package entity

// Roles válidos para User. El conjunto es cerrado.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleSecurity = "security"
)

// Position cargo del usuario; Level menor = más senior.
type Position struct {
	Name  string
	Level int
}

// User representa un usuario del sistema. Lo administra el colaborador de autenticación;
// el núcleo de visitas lo trata como entrada de solo lectura.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash
	Role         string // admin, manager, employee, security
	Position     Position
}

// DisplayName devuelve el nombre completo o, si falta, el username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Actor es quien ejecuta la operación en la petición actual.
// Se pasa explícitamente a cada caso de uso; nunca se lee de estado global.
type Actor struct {
	ID   int64
	Role string
	IP   string
}

// Authenticated informa si hay una sesión válida detrás del actor.
func (a *Actor) Authenticated() bool {
	return a != nil && a.ID > 0
}
