package directory

import "github.com/google/uuid"

// CreateUserInput holds the validated payload to create a staff account.
type CreateUserInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	DocumentNumber string
	Phone          *string
	Address        string
	RoleID         *uuid.UUID
}

// UpdateUserInput patches a staff account. A non-nil Password triggers a
// rehash.
type UpdateUserInput struct {
	Email          *string
	Password       *string
	FirstName      *string
	LastName       *string
	DocumentNumber *string
	Phone          *string
	Address        *string
	RoleID         *uuid.UUID
}

// CreateRoleInput holds the validated payload to create a role.
type CreateRoleInput struct {
	Name        string
	Description *string
}

// UpdateRoleInput patches a role.
type UpdateRoleInput struct {
	Name        *string
	Description *string
}

// RegisterClientInput is the public storefront signup payload.
type RegisterClientInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	CompanyName *string
}

// UpdateClientInput patches a shopper account.
type UpdateClientInput struct {
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	Phone       *string
	Address     *string
	CompanyName *string
}
