package domain

import "time"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// AuthProvider identifies where an account's identity originates. Local
// accounts carry a password hash; federated accounts carry a provider-issued
// external id instead.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
	ProviderGithub AuthProvider = "GITHUB"
)

// User models an account in the system, local or federated.
type User struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	Active        bool         `json:"active"`
	Provider      AuthProvider `json:"provider"`
	ProviderID    string       `json:"provider_id,omitempty"`
	EmailVerified bool         `json:"email_verified"`
	Roles         []string     `json:"roles"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds ROLE_ADMIN.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// Role is a named permission grouping. Roles are seeded once at startup and
// referenced by name from User.Roles.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
