package ecommerce

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

// Repository handles online order persistence.
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

// Create inserts the order with its details.
func (r *Repository) Create(ctx context.Context, order *models.EcommerceOrder) (*models.EcommerceOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads the order hydrated with details, products, client and handler.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.EcommerceOrder, error) {
	var order models.EcommerceOrder
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Product").
		Preload("Client").
		Preload("User").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all online orders newest-first, hydrated.
func (r *Repository) List(ctx context.Context) ([]models.EcommerceOrder, error) {
	var list []models.EcommerceOrder
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Product").
		Preload("Client").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByClient returns the client's own orders, newest first.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.EcommerceOrder, error) {
	var list []models.EcommerceOrder
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Preload("Details").
		Preload("Details.Product").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Save persists the scalar columns of the order row.
func (r *Repository) Save(ctx context.Context, order *models.EcommerceOrder) error {
	return r.db.WithContext(ctx).
		Omit("Details", "Client", "User").
		Save(order).Error
}

// DeleteDetails removes all detail rows of an order.
func (r *Repository) DeleteDetails(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ecommerce_order_id = ?", orderID).
		Delete(&models.EcommerceDetail{}).Error
}

// CreateDetails inserts a batch of detail rows.
func (r *Repository) CreateDetails(ctx context.Context, details []models.EcommerceDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

// UpdateStatus flips the order status without touching anything else.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.EcommerceOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
