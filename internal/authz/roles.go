// Package authz implementa el modelo role × resource × action con la
// jerarquía de overrides evaluada en el engine, no duplicada en la matriz.
package authz

import "strings"

// Role es el rol de negocio de un principal.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
	RoleGuest      Role = "guest"
	RoleStaff      Role = "staff"
	RoleTrainer    Role = "trainer"
	RoleMember     Role = "member"
	RoleOther      Role = "other"
)

// ParseRole normaliza un rol serializado (claims, DB). Un valor desconocido
// cae a RoleOther: autenticado pero sin permisos de la matriz.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSuperadmin:
		return RoleSuperadmin
	case RoleAdmin:
		return RoleAdmin
	case RoleOwner:
		return RoleOwner
	case RoleGuest:
		return RoleGuest
	case RoleStaff:
		return RoleStaff
	case RoleTrainer:
		return RoleTrainer
	case RoleMember:
		return RoleMember
	default:
		return RoleOther
	}
}

func (r Role) String() string { return string(r) }
