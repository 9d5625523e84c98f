package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/candyland-dev/candyland-backend/api/middleware"
	"github.com/candyland-dev/candyland-backend/api/responses"
	"github.com/candyland-dev/candyland-backend/api/validators"
	ordersvc "github.com/candyland-dev/candyland-backend/internal/orders"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

type orderLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	NameClient   string             `json:"nameClient" validate:"required,max=50"`
	NameCompany  *string            `json:"nameCompany,omitempty" validate:"omitempty,max=50"`
	Status       *string            `json:"status,omitempty"`
	UserID       *uuid.UUID         `json:"userId,omitempty"`
	OrderDetails []orderLineRequest `json:"orderDetails" validate:"required,min=1,dive"`
}

type updateOrderRequest struct {
	NameClient   *string             `json:"nameClient,omitempty" validate:"omitempty,min=1,max=50"`
	NameCompany  *string             `json:"nameCompany,omitempty" validate:"omitempty,max=50"`
	Status       *string             `json:"status,omitempty"`
	OrderDetails *[]orderLineRequest `json:"orderDetails,omitempty" validate:"omitempty,min=1,dive"`
}

func toLineInputs(lines []orderLineRequest) []ordersvc.LineInput {
	out := make([]ordersvc.LineInput, 0, len(lines))
	for _, line := range lines {
		out = append(out, ordersvc.LineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

// CreateOrder registers a counter sale for the authenticated staff member.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, ok := middleware.StaffFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "staff context missing"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		// The creator always comes from the token; a mismatching userId in the
		// body is rejected rather than silently reassigned.
		if payload.UserID != nil && *payload.UserID != staff.ID {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.New(pkgerrors.CodeForbidden, "cannot create orders for another user"))
			return
		}

		input := ordersvc.CreateOrderInput{
			NameClient:  payload.NameClient,
			NameCompany: payload.NameCompany,
			Lines:       toLineInputs(payload.OrderDetails),
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

		order, err := svc.Create(r.Context(), staff.ID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders returns all counter orders, newest first.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// GetOrder returns one hydrated counter order.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, order)
	}
}

// UpdateOrder patches an order. A present orderDetails replaces the whole
// line set through restore-then-reapply reconciliation.
func UpdateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		input := ordersvc.UpdateOrderInput{
			NameClient:  payload.NameClient,
			NameCompany: payload.NameCompany,
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
		if payload.OrderDetails != nil {
			lines := toLineInputs(*payload.OrderDetails)
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

// DeleteOrder rejects an order. Stock already consumed is not restored.
func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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
