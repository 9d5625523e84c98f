package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

// Repository handles persistence for staff users, roles and shopper clients.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateUser inserts the staff account.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByID loads one staff account with its role, active or not.
func (r *Repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveUserByEmail loads an active staff account by email. The active
// filter lives in the query itself; a deactivated user is indistinguishable
// from a missing one.
func (r *Repository) FindActiveUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns active staff accounts with their roles, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Role", "is_active = ?", true).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// TouchUserLastLogin records the time a staff account last authenticated.
func (r *Repository) TouchUserLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// SaveUser persists the full user row.
func (r *Repository) SaveUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit("Role").Save(user).Error
}

// DeactivateUser flips is_active off.
func (r *Repository) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	return deactivate[models.User](r.db, ctx, id)
}

// CreateRole inserts the role.
func (r *Repository) CreateRole(ctx context.Context, role *models.Role) (*models.Role, error) {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// FindRoleByID loads one active role.
func (r *Repository) FindRoleByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles returns active roles, newest first.
func (r *Repository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// SaveRole persists the full role row.
func (r *Repository) SaveRole(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Omit("Users").Save(role).Error
}

// DeactivateRole flips is_active off.
func (r *Repository) DeactivateRole(ctx context.Context, id uuid.UUID) error {
	return deactivate[models.Role](r.db, ctx, id)
}

// CreateClient inserts the shopper account.
func (r *Repository) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// FindByID loads one shopper account regardless of active state.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindClientByEmail loads a shopper by email regardless of active state.
// The caller decides what an inactive account means.
func (r *Repository) FindClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// ListClients returns active shoppers, newest first.
func (r *Repository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// SaveClient persists the full client row.
func (r *Repository) SaveClient(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// DeactivateClient flips is_active off.
func (r *Repository) DeactivateClient(ctx context.Context, id uuid.UUID) error {
	return deactivate[models.Client](r.db, ctx, id)
}

func deactivate[T any](db *gorm.DB, ctx context.Context, id uuid.UUID) error {
	var zero T
	res := db.WithContext(ctx).
		Model(&zero).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
