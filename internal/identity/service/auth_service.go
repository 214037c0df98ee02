package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	orgdomain "spacehub/backend/internal/organization/domain"
	"spacehub/backend/internal/security"
	userdomain "spacehub/backend/internal/user/domain"
)

// Sentinel errors for the auth service; the handler maps them to HTTP codes.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthResult holds the outcome of Register or Login: the minted access token
// and the account it belongs to.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      string
	OrgID       string
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, bool, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// OrgRepo is the minimal organization repository needed by the auth service.
type OrgRepo interface {
	Create(ctx context.Context, o *orgdomain.Org) error
}

// TokenIssuer mints access tokens. Implemented by security.TokenProvider.
type TokenIssuer interface {
	IssueAccess(userID string) (token string, expiresAt time.Time, err error)
}

// AuthService implements password-based register and login. Registration
// creates the organization together with its first user, who gets the admin
// role.
type AuthService struct {
	userRepo UserRepo
	orgRepo  OrgRepo
	hasher   *security.Hasher
	tokens   TokenIssuer
}

// NewAuthService returns an AuthService over the given repositories, hasher, and token issuer.
func NewAuthService(userRepo UserRepo, orgRepo OrgRepo, hasher *security.Hasher, tokens TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, orgRepo: orgRepo, hasher: hasher, tokens: tokens}
}

// Register creates an organization and its first admin user, then mints an
// access token for that user.
func (s *AuthService) Register(ctx context.Context, orgName, email, name, password string) (*AuthResult, error) {
	orgName = strings.TrimSpace(orgName)
	email = strings.ToLower(strings.TrimSpace(email))
	if orgName == "" || !emailRe.MatchString(email) || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	_, exists, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	org := &orgdomain.Org{ID: uuid.NewString(), Name: orgName, CreatedAt: now}
	if err := org.Validate(); err != nil {
		return nil, ErrInvalidInput
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	u := &userdomain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         userdomain.RoleAdmin,
		OrgID:        org.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return nil, ErrInvalidInput
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.mint(u)
}

// Login verifies the password for the given email and mints an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, found, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.mint(u)
}

func (s *AuthService) mint(u *userdomain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresAt: expiresAt, UserID: u.ID, OrgID: u.OrgID}, nil
}
