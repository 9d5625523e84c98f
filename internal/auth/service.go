// Package auth implements the two login gates: staff against the users table
// and shoppers against the clients table. The realms never cross.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/candyland-dev/candyland-backend/pkg/auth"
	"github.com/candyland-dev/candyland-backend/pkg/config"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/security"
)

// invalidCredentials is deliberately the same for every failure mode so the
// response never reveals whether the email exists.
const invalidCredentials = "invalid credentials"

// Profile is the principal snapshot returned alongside the token.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
}

// LoginResult is the success payload of both login gates.
type LoginResult struct {
	AccessToken string  `json:"accessToken"`
	TokenType   string  `json:"tokenType"`
	ExpiresIn   int     `json:"expiresIn"`
	Profile     Profile `json:"profile"`
}

type userReader interface {
	FindActiveUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchUserLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type clientReader interface {
	FindClientByEmail(ctx context.Context, email string) (*models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

// Service exposes login and principal validation for both realms.
type Service interface {
	LoginStaff(ctx context.Context, email, password string) (*LoginResult, error)
	LoginClient(ctx context.Context, email, password string) (*LoginResult, error)
	ValidateStaff(ctx context.Context, claims *pkgauth.AccessTokenClaims) (*models.User, error)
	ValidateClient(ctx context.Context, claims *pkgauth.AccessTokenClaims) (*models.Client, error)
}

type service struct {
	users   userReader
	clients clientReader
	jwtCfg  config.JWTConfig
	now     func() time.Time
}

// NewService constructs the auth service.
func NewService(users userReader, clients clientReader, jwtCfg config.JWTConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user reader required")
	}
	if clients == nil {
		return nil, fmt.Errorf("client reader required")
	}
	return &service{users: users, clients: clients, jwtCfg: jwtCfg, now: time.Now}, nil
}

// LoginStaff authenticates against the users table. The lookup itself filters
// inactive accounts, so a deactivated user fails exactly like a wrong email.
func (s *service) LoginStaff(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindActiveUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if err := s.checkPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}

	// Login should not fail because the bookkeeping write did.
	_ = s.users.TouchUserLastLogin(ctx, user.ID, s.now())

	return s.mint(pkgauth.AccessTokenPayload{
		SubjectID: user.ID,
		Realm:     pkgauth.RealmStaff,
		Email:     user.Email,
		RoleName:  user.RoleName(),
	}, Profile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.RoleName(),
	})
}

// LoginClient authenticates against the clients table. The lookup fetches
// the row regardless of state and rejects inactive afterward.
func (s *service) LoginClient(ctx context.Context, email, password string) (*LoginResult, error) {
	client, err := s.clients.FindClientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}
	if !client.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
	}

	if err := s.checkPassword(password, client.PasswordHash); err != nil {
		return nil, err
	}

	role := client.Role
	if role == "" {
		role = models.DefaultClientRole
	}
	return s.mint(pkgauth.AccessTokenPayload{
		SubjectID: client.ID,
		Realm:     pkgauth.RealmClient,
		Email:     client.Email,
		RoleName:  role,
	}, Profile{
		ID:        client.ID,
		Email:     client.Email,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Role:      role,
	})
}

// ValidateStaff re-fetches the staff principal behind a parsed token.
func (s *service) ValidateStaff(ctx context.Context, claims *pkgauth.AccessTokenClaims) (*models.User, error) {
	if claims == nil || claims.Realm != pkgauth.RealmStaff {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token not valid for this realm")
	}
	user, err := s.users.FindUserByID(ctx, claims.SubjectID)
	if err != nil || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token not valid or principal no longer exists")
	}
	return user, nil
}

// ValidateClient re-fetches the shopper principal behind a parsed token.
func (s *service) ValidateClient(ctx context.Context, claims *pkgauth.AccessTokenClaims) (*models.Client, error) {
	if claims == nil || claims.Realm != pkgauth.RealmClient {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token not valid for this realm")
	}
	client, err := s.clients.FindByID(ctx, claims.SubjectID)
	if err != nil || !client.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token not valid or principal no longer exists")
	}
	return client, nil
}

func (s *service) checkPassword(password, hash string) error {
	ok, err := security.VerifyPassword(password, hash)
	if err != nil || !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
	}
	return nil
}

func (s *service) mint(payload pkgauth.AccessTokenPayload, profile Profile) (*LoginResult, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwtCfg.ExpirySeconds(),
		Profile:     profile,
	}, nil
}
