// Package access define el modelo de roles y permisos.
//
// La jerarquía es una tabla plana y explícita: el conjunto de admin está enumerado
// a mano y no se deriva de los demás. Agregar un rol exige actualizar admin.
package access

import (
	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

var roleHierarchy = map[string][]string{
	entity.RoleAdmin:    {entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee, entity.RoleSecurity},
	entity.RoleManager:  {entity.RoleManager, entity.RoleEmployee},
	entity.RoleSecurity: {entity.RoleSecurity},
	entity.RoleEmployee: {entity.RoleEmployee},
}

// Roles devuelve los roles conocidos en orden estable.
func Roles() []string {
	return []string{entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee, entity.RoleSecurity}
}

// IsValidRole informa si role existe en la jerarquía.
func IsValidRole(role string) bool {
	_, ok := roleHierarchy[role]
	return ok
}

// HasPermission devuelve true si requiredRole está en el conjunto de actorRole.
// Un rol desconocido o vacío no tiene permisos.
func HasPermission(actorRole, requiredRole string) bool {
	for _, r := range roleHierarchy[actorRole] {
		if r == requiredRole {
			return true
		}
	}
	return false
}

// RequireRole es el gate de las rutas de escritura:
// ErrUnauthenticated sin sesión, ErrForbidden si el rol no alcanza.
func RequireRole(actor *entity.Actor, requiredRole string) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if !HasPermission(actor.Role, requiredRole) {
		return domain.ErrForbidden
	}
	return nil
}

// LandingView vista inicial del dashboard según el rol (redirección post-login).
func LandingView(role string) string {
	switch role {
	case entity.RoleManager:
		return "pending"
	case entity.RoleSecurity:
		return "today"
	default:
		return "default"
	}
}
