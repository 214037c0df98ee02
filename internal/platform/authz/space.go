package authz

import (
	"context"
	"time"
)

// Permission levels requested at route registration.
const (
	PermissionRead = "read"
	PermissionEdit = "edit"
)

// SpaceMembership is a stored grant on a space: the member's role and
// permission set as recorded in the membership row.
type SpaceMembership struct {
	Role        string
	Permissions map[string]bool
}

// MembershipSource looks up the direct membership row for (space, user).
// found is false when no row exists; callers must handle that branch.
type MembershipSource interface {
	FindSpaceMembership(ctx context.Context, spaceID, userID string) (m *SpaceMembership, found bool, err error)
}

// SpaceAccess is the ownership slice of a space consulted by the fallback
// path: its organization and creator.
type SpaceAccess struct {
	OrgID     string
	CreatedBy string
}

// SpaceSource looks up a space's ownership facts. found is false when the
// space does not exist.
type SpaceSource interface {
	FindSpaceAccess(ctx context.Context, spaceID string) (a *SpaceAccess, found bool, err error)
}

// DecisionCache caches successful access decisions. Implementations must
// treat a miss as (nil, nil).
type DecisionCache interface {
	GetDecision(ctx context.Context, spaceID, userID, permission string) (*Decision, error)
	SetDecision(ctx context.Context, spaceID, userID, permission string, d *Decision, ttl time.Duration) error
}

// SpaceAccessChecker resolves whether a principal may act on a space.
//
// Precedence: a direct membership row always wins, even when the
// creator-or-admin fallback would deny. Only when no row exists does the
// checker consult the space's organization and creator, granting the implicit
// owner role to the creator or an org admin and denying everyone else.
type SpaceAccessChecker struct {
	Memberships MembershipSource
	Spaces      SpaceSource
	// Cache is optional. Cache faults degrade to direct reads, never to a
	// denial. Denials are never cached.
	Cache    DecisionCache
	CacheTTL time.Duration
	// ReadTimeout bounds each store read when positive.
	ReadTimeout time.Duration
}

// Check resolves access for p on spaceID at the requested permission level.
// On success it returns the Decision to attach to the request; on failure the
// tagged rejection. Performs at most two store reads.
func (c *SpaceAccessChecker) Check(ctx context.Context, p *Principal, spaceID, permission string) (*Decision, *Error) {
	if p == nil {
		return nil, ErrUnauthorized
	}
	if spaceID == "" {
		return nil, ErrMissingSpaceID
	}
	if permission == "" {
		permission = PermissionRead
	}

	if c.Cache != nil {
		if d, err := c.Cache.GetDecision(ctx, spaceID, p.ID, permission); err == nil && d != nil {
			return d, nil
		}
	}

	m, found, err := c.findMembership(ctx, spaceID, p.ID)
	if err != nil {
		return nil, AccessCheckFault(err)
	}
	if found {
		perms := m.Permissions
		if perms == nil {
			perms = map[string]bool{}
		}
		return c.grant(ctx, p, permission, &Decision{SpaceID: spaceID, Role: m.Role, Permissions: perms}), nil
	}

	access, found, err := c.findSpaceAccess(ctx, spaceID)
	if err != nil {
		return nil, AccessCheckFault(err)
	}
	if !found {
		return nil, ErrSpaceDenied
	}
	if access.OrgID != p.OrgID {
		return nil, ErrSpaceDenied
	}
	if access.CreatedBy != p.ID && p.Role != RoleAdmin {
		return nil, ErrSpaceDenied
	}

	// Implicit grant via creation or admin override: owner role, no stored permissions.
	return c.grant(ctx, p, permission, &Decision{SpaceID: spaceID, Role: "owner", Permissions: map[string]bool{}}), nil
}

func (c *SpaceAccessChecker) grant(ctx context.Context, p *Principal, permission string, d *Decision) *Decision {
	if c.Cache != nil {
		_ = c.Cache.SetDecision(ctx, d.SpaceID, p.ID, permission, d, c.CacheTTL)
	}
	return d
}

func (c *SpaceAccessChecker) findMembership(ctx context.Context, spaceID, userID string) (*SpaceMembership, bool, error) {
	ctx, cancel := c.readContext(ctx)
	defer cancel()
	return c.Memberships.FindSpaceMembership(ctx, spaceID, userID)
}

func (c *SpaceAccessChecker) findSpaceAccess(ctx context.Context, spaceID string) (*SpaceAccess, bool, error) {
	ctx, cancel := c.readContext(ctx)
	defer cancel()
	return c.Spaces.FindSpaceAccess(ctx, spaceID)
}

func (c *SpaceAccessChecker) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.ReadTimeout > 0 {
		return context.WithTimeout(ctx, c.ReadTimeout)
	}
	return ctx, func() {}
}
