// Package reconcile owns every stock mutation in the platform. Order creation,
// update and rejection all funnel through the engine so that price snapshots
// and stock arithmetic stay consistent between the counter and the storefront.
package reconcile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
)

// RequestedLine is one product/quantity pair from an incoming order payload.
type RequestedLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// Line is a reconciled order line with the unit price snapshotted from the
// catalog at reconciliation time.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	SubTotal  decimal.Decimal
}

// Options controls how the engine applies stock.
type Options struct {
	// EnforceStockCeiling rejects any line whose quantity exceeds the
	// current stock. Counter sales enforce it; storefront orders do not,
	// so an oversold product simply goes negative and surfaces on the
	// inventory report.
	EnforceStockCeiling bool
}

// Engine applies and restores stock inside a caller-provided transaction.
type Engine struct{}

// NewEngine constructs the reconciliation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply resolves every requested line against the catalog, snapshots unit
// prices, decrements stock and returns the reconciled lines plus the order
// total. It must run inside a transaction: a failed line aborts the whole
// batch and the caller's rollback undoes any decrements already applied.
func (e *Engine) Apply(ctx context.Context, tx *gorm.DB, requested []RequestedLine, opts Options) ([]Line, decimal.Decimal, error) {
	if len(requested) == 0 {
		return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line")
	}

	lines := make([]Line, 0, len(requested))
	total := decimal.Zero

	for _, req := range requested {
		if req.Quantity <= 0 {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("quantity must be positive for product %s", req.ProductID))
		}

		var product models.Product
		if err := tx.WithContext(ctx).First(&product, "id = ?", req.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("product %s not found", req.ProductID))
			}
			return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if !product.IsActive {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("product %s is not active", product.Name))
		}

		if opts.EnforceStockCeiling && product.Stock < req.Quantity {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("insufficient stock for %s: have %d, need %d", product.Name, product.Stock, req.Quantity)).
				WithDetails(map[string]any{"productId": product.ID, "stock": product.Stock, "requested": req.Quantity})
		}

		if err := e.decrement(ctx, tx, product, req.Quantity, opts); err != nil {
			return nil, decimal.Zero, err
		}

		unitPrice := product.Price
		subTotal := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		total = total.Add(subTotal)

		lines = append(lines, Line{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
			SubTotal:  subTotal,
		})
	}

	return lines, total, nil
}

// decrement applies the stock delta. Under the ceiling the guard is repeated
// in the WHERE clause so a concurrent order cannot drive stock below zero
// between the read above and this write.
func (e *Engine) decrement(ctx context.Context, tx *gorm.DB, product models.Product, quantity int, opts Options) error {
	q := tx.WithContext(ctx).Model(&models.Product{}).Where("id = ?", product.ID)
	if opts.EnforceStockCeiling {
		q = q.Where("stock >= ?", quantity)
	}
	res := q.Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: decrement stock")
	}
	if res.RowsAffected == 0 {
		if opts.EnforceStockCeiling {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("insufficient stock for %s: have %d, need %d", product.Name, product.Stock, quantity))
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", product.ID))
	}
	return nil
}

// Restore returns previously reconciled quantities to the catalog. Used when
// an order's lines are replaced during an update so the new lines reconcile
// against the pre-order stock.
func (e *Engine) Restore(ctx context.Context, tx *gorm.DB, lines []Line) error {
	for _, line := range lines {
		res := tx.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ?", line.ProductID).
			Update("stock", gorm.Expr("stock + ?", line.Quantity))
		if res.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: restore stock")
		}
	}
	return nil
}
