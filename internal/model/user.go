package model

import "time"

// Role names are a fixed set created at startup by the role bootstrapper.
// Registration assigns RoleUser; catalog mutations require RoleAdmin or
// RoleAgent.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleAgent = "AGENT"
)

// User represents a row in the `users` table.  PasswordHash always holds a
// bcrypt hash, never a plaintext password.  RefreshToken is the single
// refresh-token slot: at most one refresh token is valid per user, and
// writing a new value supersedes whatever was stored before.  Both secret
// fields are excluded from JSON; handlers serialize the sanitized view in
// Public().
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone,omitempty"`
	RoleID       uint8     `json:"-"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"-"` // nullable column, "" when cleared
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// PublicUser is the sanitized client-facing view of a User.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the subset of User fields safe to serialize.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Role maps a small integer ID to a role name in the `roles` table.
type Role struct {
	ID   uint8  `json:"id"`
	Name string `json:"name"`
}
