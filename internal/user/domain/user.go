package domain

import (
	"errors"
	"time"
)

// User is the core user entity. Every user belongs to exactly one organization.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	OrgID        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.OrgID == "" {
		return errors.New("org_id is required")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
