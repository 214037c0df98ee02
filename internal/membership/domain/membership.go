package domain

import (
	"time"
)

// Membership grants a user a role and a permission set on a space.
// Looked up by the access check; created via member management or seeding.
type Membership struct {
	ID          string
	SpaceID     string
	UserID      string
	Role        Role
	Permissions map[string]bool
	CreatedAt   time.Time
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)
