package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/candyland-dev/candyland-backend/api/responses"
	"github.com/candyland-dev/candyland-backend/api/validators"
	directorysvc "github.com/candyland-dev/candyland-backend/internal/directory"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

type createUserRequest struct {
	Email          string     `json:"email" validate:"required,email,max=100"`
	Password       string     `json:"password" validate:"required,min=8,max=72"`
	FirstName      string     `json:"firstName" validate:"required,max=50"`
	LastName       string     `json:"lastName" validate:"required,max=50"`
	DocumentNumber string     `json:"documentNumber" validate:"required,max=20"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address        string     `json:"address" validate:"required,max=120"`
	RoleID         *uuid.UUID `json:"roleId,omitempty"`
}

type updateUserRequest struct {
	Email          *string    `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Password       *string    `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	FirstName      *string    `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName       *string    `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	DocumentNumber *string    `json:"documentNumber,omitempty" validate:"omitempty,max=20"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address        *string    `json:"address,omitempty" validate:"omitempty,max=120"`
	RoleID         *uuid.UUID `json:"roleId,omitempty"`
}

// CreateUser registers a staff account.
func CreateUser(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := svc.CreateUser(r.Context(), directorysvc.CreateUserInput{
			Email:          payload.Email,
			Password:       payload.Password,
			FirstName:      payload.FirstName,
			LastName:       payload.LastName,
			DocumentNumber: payload.DocumentNumber,
			Phone:          payload.Phone,
			Address:        payload.Address,
			RoleID:         payload.RoleID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// ListUsers returns all active staff accounts with their roles.
func ListUsers(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, users)
	}
}

// GetUser returns one staff account.
func GetUser(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := svc.GetUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UpdateUser patches a staff account, rehashing the password when present.
func UpdateUser(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := svc.UpdateUser(r.Context(), id, directorysvc.UpdateUserInput{
			Email:          payload.Email,
			Password:       payload.Password,
			FirstName:      payload.FirstName,
			LastName:       payload.LastName,
			DocumentNumber: payload.DocumentNumber,
			Phone:          payload.Phone,
			Address:        payload.Address,
			RoleID:         payload.RoleID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// DeleteUser deactivates a staff account.
func DeleteUser(svc directorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if err := svc.DeactivateUser(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteMessage(w, "user deactivated")
	}
}
