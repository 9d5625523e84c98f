package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products in the catalog. Deactivating a category hides its
// products from storefront listings without touching the products themselves.
type Category struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:60;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Slug        string    `gorm:"column:slug;size:250;not null;uniqueIndex" json:"slug"`
	ImageURL    *string   `gorm:"column:image_url;type:text" json:"imageUrl,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"isActive"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
