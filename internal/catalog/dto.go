package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	"github.com/candyland-dev/candyland-backend/pkg/pagination"
)

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Description *string
	ImageURL    *string
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	IsAvailable bool
	CategoryID  uuid.UUID
	ImageURLs   []string
}

// UpdateProductInput holds optional mutation values for a product. A non-nil
// ImageURLs replaces the full image set.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	IsAvailable *bool
	CategoryID  *uuid.UUID
	ImageURLs   *[]string
}

// CatalogPage is one page of the storefront catalog.
type CatalogPage struct {
	Data       []models.Product    `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}
