package domain

import (
	"errors"
	"time"
)

// Org represents an organization/tenant. Spaces and users hang off an org.
type Org struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate validates the organization for persistence.
func (o *Org) Validate() error {
	if o.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
