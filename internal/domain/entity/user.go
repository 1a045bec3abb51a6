package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// DefaultAvatar es el avatar asignado cuando el usuario no sube uno.
const DefaultAvatar = "default_avatar.png"

// IsRole indica si r es un rol conocido.
func IsRole(r string) bool {
	return r == RoleAdmin || r == RoleOperator || r == RoleViewer
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  *string
	Avatar       string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
