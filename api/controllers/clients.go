package controllers

import (
	"net/http"

	"github.com/candyland-dev/candyland-backend/api/responses"
	"github.com/candyland-dev/candyland-backend/api/validators"
	directorysvc "github.com/candyland-dev/candyland-backend/internal/directory"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

type registerClientRequest struct {
	Email       string  `json:"email" validate:"required,email,max=100"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	FirstName   string  `json:"firstName" validate:"required,max=50"`
	LastName    string  `json:"lastName" validate:"required,max=50"`
	Phone       string  `json:"phone" validate:"required,max=20"`
	Address     string  `json:"address" validate:"required,max=120"`
	CompanyName *string `json:"companyName,omitempty" validate:"omitempty,max=50"`
}

type updateClientRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=120"`
	CompanyName *string `json:"companyName,omitempty" validate:"omitempty,max=50"`
}

// RegisterClient handles public storefront signup.
func RegisterClient(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerClientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		client, err := svc.RegisterClient(r.Context(), directorysvc.RegisterClientInput{
			Email:       payload.Email,
			Password:    payload.Password,
			FirstName:   payload.FirstName,
			LastName:    payload.LastName,
			Phone:       payload.Phone,
			Address:     payload.Address,
			CompanyName: payload.CompanyName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, client)
	}
}

// ListClients returns all active shopper accounts.
func ListClients(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := svc.ListClients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, clients)
	}
}

// GetClient returns one shopper account.
func GetClient(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		client, err := svc.GetClient(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, client)
	}
}

// UpdateClient patches a shopper account.
func UpdateClient(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload updateClientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		client, err := svc.UpdateClient(r.Context(), id, directorysvc.UpdateClientInput{
			Email:       payload.Email,
			Password:    payload.Password,
			FirstName:   payload.FirstName,
			LastName:    payload.LastName,
			Phone:       payload.Phone,
			Address:     payload.Address,
			CompanyName: payload.CompanyName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, client)
	}
}

// DeleteClient deactivates a shopper account.
func DeleteClient(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if err := svc.DeactivateClient(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteMessage(w, "client deactivated")
	}
}
