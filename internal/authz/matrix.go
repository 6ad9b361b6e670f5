package authz

// Permission es la capacidad requerida por una ruta u operación.
type Permission struct {
	Resource string
	Action   string
}

// ResourcePermission es una entrada de la matriz: un recurso y las acciones
// permitidas sobre él.
type ResourcePermission struct {
	Resource string
	Actions  []string
}

// rolePermissions es la matriz estática role → recursos → acciones.
// La jerarquía (superadmin ⊇ todo, admin/staff/trainer ⊇ no-exclusivo) vive
// en Engine.Authorize; acá solo van los permisos planos por rol.
var rolePermissions = map[Role][]ResourcePermission{
	RoleOwner: {
		{Resource: "gyms", Actions: []string{"create", "read", "update", "delete"}},
	},
	RoleSuperadmin: {
		{Resource: "users", Actions: []string{"create", "read", "update", "delete", "activate", "deactivate"}},
		{Resource: "gyms", Actions: []string{"create", "read", "update", "delete"}},
		{Resource: "roles", Actions: []string{"create", "read", "update", "delete"}},
	},
	RoleAdmin: {
		{Resource: "users", Actions: []string{"create", "read", "update", "delete", "activate", "deactivate"}},
		{Resource: "roles", Actions: []string{"read"}},
	},
	RoleStaff: {
		{Resource: "users", Actions: []string{"create", "read", "update", "activate", "deactivate"}},
		{Resource: "roles", Actions: []string{"read"}},
	},
	RoleTrainer: {
		{Resource: "users", Actions: []string{"read"}},
		{Resource: "roles", Actions: []string{"read"}},
	},
	RoleMember: {
		{Resource: "users", Actions: []string{"read-self", "update-self"}},
	},
}

// superadminExclusive marca los recursos reservados a superadmin: el
// override de admin/staff/trainer no aplica sobre ellos.
var superadminExclusive = map[string]bool{
	"roles": true,
}

// PermissionsFor devuelve las entradas de la matriz para un rol.
// Nil para roles sin permisos declarados (guest, other).
func PermissionsFor(role Role) []ResourcePermission {
	return rolePermissions[role]
}
