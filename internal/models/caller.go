package models

import "github.com/google/uuid"

// Role — роль вызывающего в редакционном процессе.
type Role string

const (
	RoleAuthor   Role = "autor"
	RoleReviewer Role = "revisor"
	RoleEditor   Role = "editor"
	RoleAdmin    Role = "admin"
)

// ParseRole возвращает Role и false для неизвестного значения.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAuthor, RoleReviewer, RoleEditor, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// Caller — идентичность, извлечённая из проверенного bearer-токена.
type Caller struct {
	ID   uuid.UUID
	Name string
	Role Role
}
