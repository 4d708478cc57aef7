package user

import "fmt"

// Role gates admin-only routes.
type Role string

const (
	RoleUsuario Role = "usuario"
	RoleAdmin   Role = "admin"
)

// User is the denormalized session user: the only entity the portal persists
// a copy of. The backend auth credential itself travels separately.
type User struct {
	ID       int64
	Username string
	Email    string
	Role     Role
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) Validate() error {
	if u.ID <= 0 {
		return fmt.Errorf("user id is required")
	}
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}

	return nil
}
