package authz

// Role is an account-level role carried by a Principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the resolved identity for the current request: the verified
// subject plus its organization context. Built once per request by the
// authentication gate and never persisted.
type Principal struct {
	ID      string
	Email   string
	Name    string
	Role    Role
	OrgID   string
	OrgName string
}

// Decision is the outcome of the space access check, attached to the request
// for handlers that do fine-grained permission checks.
type Decision struct {
	SpaceID     string          `json:"spaceId"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}
