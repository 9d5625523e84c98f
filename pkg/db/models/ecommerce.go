package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EcommerceOrder is an online order placed by a registered client. UserID is
// set only once a staff member processes the order.
type EcommerceOrder struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	NameClient  string            `gorm:"column:name_client;size:20;not null" json:"nameClient"`
	NameCompany *string           `gorm:"column:name_company;size:50" json:"nameCompany,omitempty"`
	Status      OrderStatus       `gorm:"column:status;size:25;not null;default:'Pendiente'" json:"status"`
	Total       decimal.Decimal   `gorm:"column:total;type:decimal(10,2);not null" json:"total"`
	ClientID    uuid.UUID         `gorm:"column:client_id;type:uuid;not null;index" json:"clientId"`
	Client      *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	UserID      *uuid.UUID        `gorm:"column:user_id;type:uuid" json:"userId,omitempty"`
	User        *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Details     []EcommerceDetail `gorm:"foreignKey:EcommerceOrderID;constraint:OnDelete:CASCADE" json:"ecommerceDetails"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (o *EcommerceOrder) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// EcommerceDetail is one line of an online order.
type EcommerceDetail struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EcommerceOrderID uuid.UUID       `gorm:"column:ecommerce_order_id;type:uuid;not null;index" json:"ecommerceOrderId"`
	ProductID        uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	Product          *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity         int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unitPrice"`
	SubTotal         decimal.Decimal `gorm:"column:sub_total;type:decimal(10,2);not null" json:"subTotal"`
}

func (d *EcommerceDetail) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
