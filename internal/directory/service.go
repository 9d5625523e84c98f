// Package directory manages the people around the shop: staff users and
// their roles, plus the storefront client accounts.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/candyland-dev/candyland-backend/pkg/config"
	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/security"
)

// Service exposes directory management operations.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error

	CreateRole(ctx context.Context, input CreateRoleInput) (*models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error)
	UpdateRole(ctx context.Context, id uuid.UUID, input UpdateRoleInput) (*models.Role, error)
	DeactivateRole(ctx context.Context, id uuid.UUID) error

	RegisterClient(ctx context.Context, input RegisterClientInput) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*models.Client, error)
	DeactivateClient(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        *Repository
	dbClient    *db.Client
	passwordCfg config.PasswordConfig
}

// NewService constructs a directory service instance.
func NewService(repo *Repository, dbClient *db.Client, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("directory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, passwordCfg: passwordCfg}, nil
}

// CreateUser hashes the password and inserts the staff account. An assigned
// role must exist and be active.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.RoleID != nil {
		if _, err := s.repo.FindRoleByID(ctx, *input.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("role %s not found", *input.RoleID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load role")
		}
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:          input.Email,
		PasswordHash:   hash,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		DocumentNumber: input.DocumentNumber,
		Phone:          input.Phone,
		Address:        input.Address,
		RoleID:         input.RoleID,
		IsActive:       true,
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("user with email %q already exists", input.Email))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	return s.GetUser(ctx, created.ID)
}

// ListUsers returns the active staff accounts.
func (s *service) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	return users, nil
}

// GetUser loads one staff account. Deactivated accounts are reported as a
// validation failure rather than missing, so callers can tell the two apart.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("user %s is not active", id))
	}
	return user, nil
}

// UpdateUser patches the staff account, rehashing when a password arrives.
func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.RoleID != nil && (user.RoleID == nil || *input.RoleID != *user.RoleID) {
		if _, err := s.repo.FindRoleByID(ctx, *input.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("role %s not found", *input.RoleID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load role")
		}
		user.RoleID = input.RoleID
	}

	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.DocumentNumber != nil {
		user.DocumentNumber = *input.DocumentNumber
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}

	user.Role = nil
	if err := s.repo.SaveUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("user with email %q already exists", user.Email))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return s.GetUser(ctx, id)
}

// DeactivateUser flips the staff account off.
func (s *service) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user %s not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate user")
	}
	return nil
}

// CreateRole inserts a role.
func (s *service) CreateRole(ctx context.Context, input CreateRoleInput) (*models.Role, error) {
	role := &models.Role{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	created, err := s.repo.CreateRole(ctx, role)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("role %q already exists", input.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert role")
	}
	return created, nil
}

// ListRoles returns the active roles.
func (s *service) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list roles")
	}
	return roles, nil
}

// GetRole loads one active role.
func (s *service) GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := s.repo.FindRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("role %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load role")
	}
	return role, nil
}

// UpdateRole patches the role.
func (s *service) UpdateRole(ctx context.Context, id uuid.UUID, input UpdateRoleInput) (*models.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		role.Name = *input.Name
	}
	if input.Description != nil {
		role.Description = input.Description
	}

	if err := s.repo.SaveRole(ctx, role); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("role %q already exists", role.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update role")
	}
	return role, nil
}

// DeactivateRole flips the role off. Users keep the dangling assignment; the
// active-role filter on user reads hides it.
func (s *service) DeactivateRole(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateRole(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("role %s not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate role")
	}
	return nil
}

// RegisterClient is the public storefront signup.
func (s *service) RegisterClient(ctx context.Context, input RegisterClientInput) (*models.Client, error) {
	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	client := &models.Client{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Address:      input.Address,
		CompanyName:  input.CompanyName,
		Role:         models.DefaultClientRole,
		IsActive:     true,
	}
	created, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("client with email %q already exists", input.Email))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert client")
	}
	return created, nil
}

// ListClients returns the active shopper accounts.
func (s *service) ListClients(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list clients")
	}
	return clients, nil
}

// GetClient loads one shopper account; inactive accounts surface as a
// validation failure.
func (s *service) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("client %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}
	if !client.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("client %s is not active", id))
	}
	return client, nil
}

// UpdateClient patches the shopper account, rehashing when a password arrives.
func (s *service) UpdateClient(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*models.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		client.PasswordHash = hash
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.FirstName != nil {
		client.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		client.LastName = *input.LastName
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.CompanyName != nil {
		client.CompanyName = input.CompanyName
	}

	if err := s.repo.SaveClient(ctx, client); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("client with email %q already exists", client.Email))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update client")
	}
	return client, nil
}

// DeactivateClient flips the shopper account off.
func (s *service) DeactivateClient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateClient(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("client %s not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate client")
	}
	return nil
}
