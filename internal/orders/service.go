// Package orders implements in-store counter sales. Stock is enforced: a
// counter order can never take a product below zero.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/candyland-dev/candyland-backend/internal/reconcile"
	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
)

// Service exposes counter order operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error)
	RejectWithoutRestock(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	engine   *reconcile.Engine
}

var engineOptions = reconcile.Options{EnforceStockCeiling: true}

// NewService constructs a counter order service instance.
func NewService(repo *Repository, dbClient *db.Client, engine *reconcile.Engine) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if engine == nil {
		return nil, fmt.Errorf("reconcile engine required")
	}
	return &service{repo: repo, dbClient: dbClient, engine: engine}, nil
}

// Create reconciles the requested lines and persists the order in a single
// transaction. A bad line leaves no order, no details and no stock changes.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	status := models.OrderStatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", *input.Status))
		}
		status = *input.Status
	}

	var orderID uuid.UUID
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		lines, total, err := s.engine.Apply(ctx, tx, requestedLines(input.Lines), engineOptions)
		if err != nil {
			return err
		}

		order := &models.Order{
			NameClient:  input.NameClient,
			NameCompany: input.NameCompany,
			Status:      status,
			Total:       total,
			UserID:      userID,
			Details:     detailRows(lines),
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

// List returns every counter order, newest first.
func (s *service) List(ctx context.Context) ([]models.Order, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return list, nil
}

// Get loads one hydrated order.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return order, nil
}

// Update patches scalar fields and, when Lines is present, replaces the whole
// line set: restore old stock, delete old details, reconcile the new lines.
// Everything runs in one transaction.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", *input.Status))
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
		}

		if input.NameClient != nil {
			order.NameClient = *input.NameClient
		}
		if input.NameCompany != nil {
			order.NameCompany = input.NameCompany
		}
		if input.Status != nil {
			order.Status = *input.Status
		}

		if input.Lines != nil {
			if err := s.engine.Restore(ctx, tx, restoredLines(order.Details)); err != nil {
				return err
			}
			if err := txRepo.DeleteDetails(ctx, order.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order details")
			}

			lines, total, err := s.engine.Apply(ctx, tx, requestedLines(*input.Lines), engineOptions)
			if err != nil {
				return err
			}
			details := detailRows(lines)
			for i := range details {
				details[i].OrderID = order.ID
			}
			if err := txRepo.CreateDetails(ctx, details); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order details")
			}
			order.Total = total
		}

		order.Details = nil
		order.User = nil
		if err := txRepo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// RejectWithoutRestock forces the order into Rechazado. Stock is deliberately
// left as-is: rejected merchandise is handled by a manual inventory recount,
// not by the engine.
func (s *service) RejectWithoutRestock(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, models.OrderStatusRejected); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reject order")
	}
	return nil
}

func requestedLines(lines []LineInput) []reconcile.RequestedLine {
	out := make([]reconcile.RequestedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, reconcile.RequestedLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

func detailRows(lines []reconcile.Line) []models.OrderDetail {
	details := make([]models.OrderDetail, 0, len(lines))
	for _, line := range lines {
		details = append(details, models.OrderDetail{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			SubTotal:  line.SubTotal,
		})
	}
	return details
}

func restoredLines(details []models.OrderDetail) []reconcile.Line {
	lines := make([]reconcile.Line, 0, len(details))
	for _, d := range details {
		lines = append(lines, reconcile.Line{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			SubTotal:  d.SubTotal,
		})
	}
	return lines
}
