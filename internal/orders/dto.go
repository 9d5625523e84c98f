package orders

import (
	"github.com/google/uuid"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

// LineInput is one requested product/quantity pair. Any price in the request
// payload is discarded; unit prices are snapshotted by the reconciliation
// engine.
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput holds the validated payload to create a counter order.
type CreateOrderInput struct {
	NameClient  string
	NameCompany *string
	Status      *models.OrderStatus
	Lines       []LineInput
}

// UpdateOrderInput patches an order. A non-nil Lines replaces the whole line
// set through restore-then-reapply.
type UpdateOrderInput struct {
	NameClient  *string
	NameCompany *string
	Status      *models.OrderStatus
	Lines       *[]LineInput
}
