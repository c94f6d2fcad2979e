// internal/models/user.go
package models

type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Role    string `json:"role,omitempty"`
}

// Admin is true for either representation the backend uses.
func (u User) Admin() bool {
	return u.IsAdmin || u.Role == RoleAdmin
}

// LoginResult is the backend's login response: the user record plus token.
type LoginResult struct {
	User
	Token string `json:"token"`
}
