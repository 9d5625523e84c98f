package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/candyland-dev/candyland-backend/api/middleware"
	"github.com/candyland-dev/candyland-backend/api/responses"
	"github.com/candyland-dev/candyland-backend/api/validators"
	ecommercesvc "github.com/candyland-dev/candyland-backend/internal/ecommerce"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

type createEcommerceOrderRequest struct {
	NameClient      string             `json:"nameClient" validate:"required,max=20"`
	NameCompany     *string            `json:"nameCompany,omitempty" validate:"omitempty,max=50"`
	ClientID        *uuid.UUID         `json:"clientId,omitempty"`
	UserID          *uuid.UUID         `json:"userId,omitempty"`
	EcommerceDetail []orderLineRequest `json:"ecommerceDetail" validate:"required,min=1,dive"`
}

type updateEcommerceOrderRequest struct {
	NameClient      *string             `json:"nameClient,omitempty" validate:"omitempty,min=1,max=20"`
	NameCompany     *string             `json:"nameCompany,omitempty" validate:"omitempty,max=50"`
	Status          *string             `json:"status,omitempty"`
	ClientID        *uuid.UUID          `json:"clientId,omitempty"`
	UserID          *uuid.UUID          `json:"userId,omitempty"`
	EcommerceDetail *[]orderLineRequest `json:"ecommerceDetail,omitempty" validate:"omitempty,min=1,dive"`
}

func toEcommerceLines(lines []orderLineRequest) []ecommercesvc.LineInput {
	out := make([]ecommercesvc.LineInput, 0, len(lines))
	for _, line := range lines {
		out = append(out, ecommercesvc.LineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

// CreateEcommerceOrder places an online order for the authenticated shopper.
// A clientId in the body must match the caller; orders cannot be placed on
// behalf of another client.
func CreateEcommerceOrder(svc ecommercesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, ok := middleware.ClientFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "client context missing"))
			return
		}

		var payload createEcommerceOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if payload.ClientID != nil && *payload.ClientID != client.ID {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.New(pkgerrors.CodeForbidden, "cannot place orders for another client"))
			return
		}

		order, err := svc.Create(r.Context(), client.ID, ecommercesvc.CreateOrderInput{
			NameClient:  payload.NameClient,
			NameCompany: payload.NameCompany,
			UserID:      payload.UserID,
			Lines:       toEcommerceLines(payload.EcommerceDetail),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListEcommerceOrders returns every online order for staff processing.
func ListEcommerceOrders(svc ecommercesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// MyEcommerceOrders returns the authenticated shopper's own orders.
func MyEcommerceOrders(svc ecommercesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, ok := middleware.ClientFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "client context missing"))
			return
		}

		orders, err := svc.FindByClient(r.Context(), client.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// GetEcommerceOrder returns one hydrated online order. Shoppers can only read
// their own orders; staff can read any.
func GetEcommerceOrder(svc ecommercesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if client, ok := middleware.ClientFromContext(r.Context()); ok && order.ClientID != client.ID {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpdateEcommerceOrder patches an online order. Staff may reassign the
// handling user; shoppers may only touch their own orders.
func UpdateEcommerceOrder(svc ecommercesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload updateEcommerceOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		client, isClient := middleware.ClientFromContext(r.Context())
		if isClient {
			existing, err := svc.Get(r.Context(), id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, r, err)
				return
			}
			if existing.ClientID != client.ID {
				responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
				return
			}
			if payload.UserID != nil || payload.ClientID != nil {
				responses.WriteError(r.Context(), logg, w, r,
					pkgerrors.New(pkgerrors.CodeForbidden, "only staff can reassign orders"))
				return
			}
		}

		input := ecommercesvc.UpdateOrderInput{
			NameClient:  payload.NameClient,
			NameCompany: payload.NameCompany,
			ClientID:    payload.ClientID,
			UserID:      payload.UserID,
		}
		if payload.Status != nil {
			status := models.OrderStatus(*payload.Status)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, r,
					pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
						WithDetails(map[string]any{"status": *payload.Status}))
				return
			}
			input.Status = &status
		}
		if payload.EcommerceDetail != nil {
			lines := toEcommerceLines(*payload.EcommerceDetail)
			input.Lines = &lines
		}

		order, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// DeleteEcommerceOrder rejects an online order without restoring stock.
func DeleteEcommerceOrder(svc ecommercesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if err := svc.RejectWithoutRestock(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteMessage(w, "order rejected")
	}
}
