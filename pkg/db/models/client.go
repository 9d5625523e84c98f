package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultClientRole is the role label attached to storefront signups.
const DefaultClientRole = "client"

// Client is a shopper account for the online store, a realm fully separate
// from staff users.
type Client struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email           string     `gorm:"column:email;size:50;not null;uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"column:password_hash;not null" json:"-"`
	FirstName       string     `gorm:"column:first_name;size:30;not null" json:"firstName"`
	LastName        string     `gorm:"column:last_name;size:30;not null" json:"lastName"`
	Phone           string     `gorm:"column:phone;size:20;not null" json:"phone"`
	Role            string     `gorm:"column:role;size:20;not null;default:'client'" json:"role"`
	Address         string     `gorm:"column:address;size:120;not null" json:"address"`
	CompanyName     *string    `gorm:"column:company_name;size:50" json:"companyName,omitempty"`
	IsEmailVerified bool       `gorm:"column:is_email_verified;not null;default:false" json:"isEmailVerified"`
	IsActive        bool       `gorm:"column:is_active;not null" json:"isActive"`
	LastLogin       *time.Time `gorm:"column:last_login" json:"lastLogin,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Role == "" {
		c.Role = DefaultClientRole
	}
	return nil
}
