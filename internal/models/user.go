// Package models defines the records exchanged with the workforce
// intelligence API: users, news items, reports, intelligence cards and the
// paginated list envelope shared by every collection endpoint.
package models

import "time"

// Role is the authorization role carried by a User.
type Role string

const (
	// RoleAdmin grants access to the back office operations.
	RoleAdmin Role = "admin"
	// RoleUser is a regular reader account.
	RoleUser Role = "user"
)

// User is the identity snapshot returned by the authentication endpoints.
type User struct {
	// ID is the server-assigned identifier.
	ID string `json:"id"`
	// Username is the public handle.
	Username string `json:"username"`
	// Email is the login address.
	Email string `json:"email"`
	// Role is either "admin" or "user".
	Role Role `json:"role"`
	// IsActive reports whether the account may log in.
	IsActive bool `json:"is_active"`
	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last profile change, if any.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	// AccessToken is the bearer token for subsequent requests.
	AccessToken string `json:"access_token"`
	// TokenType is always "bearer".
	TokenType string `json:"token_type"`
	// User is the authenticated identity.
	User User `json:"user"`
}

// RegisterRequest is the body of the user and admin registration endpoints.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// UploadResult is returned by the file upload endpoints.
type UploadResult struct {
	// URL points at the stored file, site-relative or absolute.
	URL string `json:"url"`
	// Filename is the name the file was uploaded under.
	Filename string `json:"filename,omitempty"`
}
