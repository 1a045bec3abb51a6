package entity

// Capacidades que protegen los endpoints. Cada rol tiene un conjunto fijo.
const (
	PermCreateItem   = "create_barang"
	PermUpdateItem   = "update_barang"
	PermDeleteItem   = "delete_barang"
	PermManageGudang = "manage_gudang"
	PermManageMaster = "manage_master"
	PermManageUsers  = "manage_users"
	PermGenerateQR   = "generate_qr"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {
		PermCreateItem, PermUpdateItem, PermDeleteItem,
		PermManageGudang, PermManageMaster, PermManageUsers, PermGenerateQR,
	},
	RoleOperator: {PermCreateItem, PermUpdateItem, PermGenerateQR},
	RoleViewer:   {},
}

// RoleHas indica si el rol tiene la capacidad indicada.
func RoleHas(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// PermissionsOf devuelve una copia de las capacidades del rol.
func PermissionsOf(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
