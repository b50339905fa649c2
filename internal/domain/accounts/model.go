package accounts

import (
	"strings"
	"time"
)

// Role discrimina el tipo de cuenta en una única tabla de identidades.
// @Enum family, elderly
type Role string

const (
	RoleFamily  Role = "family"  // caregiver
	RoleElderly Role = "elderly" // persona cuidada
)

func (r Role) Valid() bool {
	return r == RoleFamily || r == RoleElderly
}

// Account es la identidad (login) de cualquier usuario.
type Account struct {
	ID   string
	Role Role

	Name  string
	Email string

	// Solo obligatorio para RoleFamily; único cuando no es vacío.
	PhoneNumber string

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail: trim + lower. La unicidad se evalúa sobre este valor.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
