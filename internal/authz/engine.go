package authz

import (
	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
)

// Engine evalúa la jerarquía de roles y la matriz de permisos.
// Sin estado mutable: seguro para uso concurrente entre requests.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Authorize decide si un principal puede ejecutar la capacidad requerida.
//
// Orden de evaluación (el orden importa):
//  1. required == nil → la ruta no declara permiso: abierta a cualquier
//     principal autenticado (distinto de "pública").
//  2. sin principal → Forbidden defensivo (el guard debió correr antes).
//  3. superadmin → allow incondicional.
//  4. admin/staff/trainer → allow salvo recurso exclusivo de superadmin.
//  5. lookup plano en la matriz del rol.
func (e *Engine) Authorize(principal *authn.Principal, required *Permission) error {
	if required == nil {
		return nil
	}
	if principal == nil {
		return httperrors.ErrForbidden.WithDetail("User not authenticated")
	}

	role := ParseRole(principal.Role)

	if role == RoleSuperadmin {
		return nil
	}

	if (role == RoleAdmin || role == RoleStaff || role == RoleTrainer) && !superadminExclusive[required.Resource] {
		return nil
	}

	for _, rp := range PermissionsFor(role) {
		if rp.Resource != required.Resource {
			continue
		}
		for _, action := range rp.Actions {
			if action == required.Action {
				return nil
			}
		}
	}
	return httperrors.ErrForbidden
}

// AuthorizeSelf autoriza action sobre resource aceptando la variante
// "<action>-self" cuando el target es el propio principal. Así un member
// sin users:read igual puede leer su propio registro.
func (e *Engine) AuthorizeSelf(principal *authn.Principal, resource, action, targetID string) error {
	if err := e.Authorize(principal, &Permission{Resource: resource, Action: action}); err == nil {
		return nil
	}
	if principal != nil && targetID != "" && principal.UserID == targetID {
		return e.Authorize(principal, &Permission{Resource: resource, Action: action + "-self"})
	}
	return httperrors.ErrForbidden
}
