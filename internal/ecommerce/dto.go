package ecommerce

import (
	"github.com/google/uuid"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

// LineInput is one requested product/quantity pair from the storefront cart.
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput holds the validated payload of a storefront checkout.
type CreateOrderInput struct {
	NameClient  string
	NameCompany *string
	UserID      *uuid.UUID
	Lines       []LineInput
}

// UpdateOrderInput patches an online order. A non-nil Lines replaces the
// whole line set through restore-then-reapply; UserID records the staff
// member handling the order; ClientID re-points it to another client.
type UpdateOrderInput struct {
	NameClient  *string
	NameCompany *string
	Status      *models.OrderStatus
	ClientID    *uuid.UUID
	UserID      *uuid.UUID
	Lines       *[]LineInput
}
