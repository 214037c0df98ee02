package domain

import (
	"errors"
	"time"
)

// Space is an addressable resource: a grouping of tasks owned by its creator
// within an organization.
type Space struct {
	ID          string
	Name        string
	Description string
	OrgID       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccessInfo is the slice of a space the access check needs: its owning
// organization and creator.
type AccessInfo struct {
	OrgID     string
	CreatedBy string
}

// Validate validates the space for persistence.
func (s *Space) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.OrgID == "" {
		return errors.New("org_id is required")
	}
	if s.CreatedBy == "" {
		return errors.New("created_by is required")
	}
	return nil
}
