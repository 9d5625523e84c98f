// Package ecommerce implements storefront orders. The stock ceiling is off
// for this flow: a storefront sale is a commitment to fulfill, so stock may
// go negative and surface on the inventory report instead of blocking the
// customer.
package ecommerce

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

// Service exposes online order operations.
type Service interface {
	Create(ctx context.Context, clientID uuid.UUID, input CreateOrderInput) (*models.EcommerceOrder, error)
	List(ctx context.Context) ([]models.EcommerceOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.EcommerceOrder, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]models.EcommerceOrder, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.EcommerceOrder, error)
	RejectWithoutRestock(ctx context.Context, id uuid.UUID) error
}

type clientLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	engine     *reconcile.Engine
	clientRepo clientLoader
}

var engineOptions = reconcile.Options{EnforceStockCeiling: false}

// NewService constructs an online order service instance.
func NewService(repo *Repository, dbClient *db.Client, engine *reconcile.Engine, clientRepo clientLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ecommerce repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if engine == nil {
		return nil, fmt.Errorf("reconcile engine required")
	}
	if clientRepo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo, dbClient: dbClient, engine: engine, clientRepo: clientRepo}, nil
}

// Create reconciles the cart and persists the order in a single transaction.
func (s *service) Create(ctx context.Context, clientID uuid.UUID, input CreateOrderInput) (*models.EcommerceOrder, error) {
	if clientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clientId is required")
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("client %s not found", clientID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}

	var orderID uuid.UUID
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		lines, total, err := s.engine.Apply(ctx, tx, requestedLines(input.Lines), engineOptions)
		if err != nil {
			return err
		}

		order := &models.EcommerceOrder{
			NameClient:  input.NameClient,
			NameCompany: input.NameCompany,
			Status:      models.OrderStatusPending,
			Total:       total,
			ClientID:    clientID,
			UserID:      input.UserID,
			Details:     detailRows(lines),
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert ecommerce order")
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

// List returns every online order, newest first.
func (s *service) List(ctx context.Context) ([]models.EcommerceOrder, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list ecommerce orders")
	}
	return list, nil
}

// Get loads one hydrated order.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.EcommerceOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("ecommerce order %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load ecommerce order")
	}
	return order, nil
}

// FindByClient returns the caller's own orders.
func (s *service) FindByClient(ctx context.Context, clientID uuid.UUID) ([]models.EcommerceOrder, error) {
	list, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list client orders")
	}
	return list, nil
}

// Update patches scalar fields and, when Lines is present, replaces the whole
// line set with restore-then-reapply. Everything runs in one transaction.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.EcommerceOrder, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", *input.Status))
	}

	if input.ClientID != nil {
		if _, err := s.clientRepo.FindByID(ctx, *input.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("client %s not found", *input.ClientID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
		}
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("ecommerce order %s not found", id))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load ecommerce order")
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
		if input.ClientID != nil {
			order.ClientID = *input.ClientID
		}
		if input.UserID != nil {
			order.UserID = input.UserID
		}

		if input.Lines != nil {
			if err := s.engine.Restore(ctx, tx, restoredLines(order.Details)); err != nil {
				return err
			}
			if err := txRepo.DeleteDetails(ctx, order.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete ecommerce details")
			}

			lines, total, err := s.engine.Apply(ctx, tx, requestedLines(*input.Lines), engineOptions)
			if err != nil {
				return err
			}
			details := detailRows(lines)
			for i := range details {
				details[i].EcommerceOrderID = order.ID
			}
			if err := txRepo.CreateDetails(ctx, details); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert ecommerce details")
			}
			order.Total = total
		}

		order.Details = nil
		order.Client = nil
		order.User = nil
		if err := txRepo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update ecommerce order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// RejectWithoutRestock forces the order into Rechazado without returning
// stock, same policy as the counter flow.
func (s *service) RejectWithoutRestock(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, models.OrderStatusRejected); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("ecommerce order %s not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reject ecommerce order")
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

func detailRows(lines []reconcile.Line) []models.EcommerceDetail {
	details := make([]models.EcommerceDetail, 0, len(lines))
	for _, line := range lines {
		details = append(details, models.EcommerceDetail{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			SubTotal:  line.SubTotal,
		})
	}
	return details
}

func restoredLines(details []models.EcommerceDetail) []reconcile.Line {
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
