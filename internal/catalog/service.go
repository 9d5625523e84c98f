// Package catalog manages the confectionery catalog: categories, products and
// their storefront listing.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/pagination"
	"github.com/candyland-dev/candyland-backend/pkg/slug"
)

// Service exposes catalog management operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*models.Category, error)
	DeactivateCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	FindCatalog(ctx context.Context, page, limit int) (*CatalogPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateCategory derives the slug from the name and inserts the category.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		Slug:        slug.Make(input.Name),
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("category %q already exists", input.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return created, nil
}

// ListCategories returns the active categories with their active products.
func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return categories, nil
}

// GetCategory loads one active category.
func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return category, nil
}

// UpdateCategory patches the category, re-deriving the slug on rename.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
		category.Slug = slug.Make(*input.Name)
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = input.ImageURL
	}

	if err := s.repo.SaveCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("category %q already exists", category.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return category, nil
}

// DeactivateCategory hides the category from storefront listings.
func (s *service) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %s not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate category")
	}
	return nil
}

// CreateProduct validates the category, derives the slug and inserts the
// product with its images in one transaction.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	var created *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.FindCategoryByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %s not found", input.CategoryID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
		}

		product := &models.Product{
			Name:        input.Name,
			Description: input.Description,
			Slug:        slug.Make(input.Name),
			Price:       input.Price,
			Stock:       input.Stock,
			IsAvailable: input.IsAvailable,
			IsActive:    true,
			CategoryID:  input.CategoryID,
			Images:      imageRows(uuid.Nil, input.ImageURLs),
		}

		var err error
		created, err = txRepo.CreateProduct(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %q already exists", input.Name))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindCatalog returns one storefront page.
func (s *service) FindCatalog(ctx context.Context, page, limit int) (*CatalogPage, error) {
	params := pagination.Normalize(page, limit)
	products, total, err := s.repo.ListCatalog(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list catalog")
	}
	return &CatalogPage{
		Data:       products,
		Pagination: pagination.BuildMetadata(params, total),
	}, nil
}

// GetProduct loads one active product with category and images.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

// FindByCategory lists the active products of an active category.
func (s *service) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	products, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products by category")
	}
	return products, nil
}

// UpdateProduct patches the product; a non-nil image set replaces all images.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	if input.Price != nil && !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
			if _, err := txRepo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %s not found", *input.CategoryID))
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
			}
			product.CategoryID = *input.CategoryID
		}

		if input.Name != nil {
			product.Name = *input.Name
			product.Slug = slug.Make(*input.Name)
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.IsAvailable != nil {
			product.IsAvailable = *input.IsAvailable
		}

		// Save skips associations; images are replaced explicitly below.
		product.Images = nil
		product.Category = nil
		if err := txRepo.SaveProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %q already exists", product.Name))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if input.ImageURLs != nil {
			if err := txRepo.ReplaceProductImages(ctx, id, imageRows(id, *input.ImageURLs)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace product images")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeactivateProduct hides the product, leaving stock and history untouched.
func (s *service) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate product")
	}
	return nil
}

func imageRows(productID uuid.UUID, urls []string) []models.ProductImage {
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.ProductImage, 0, len(urls))
	for _, url := range urls {
		if url == "" {
			continue
		}
		row := models.ProductImage{URL: url}
		if productID != uuid.Nil {
			row.ProductID = productID
		}
		images = append(images, row)
	}
	return images
}
