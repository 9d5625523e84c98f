package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state shared by in-store and online orders.
// The values are kept in Spanish for parity with the historical data set.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pendiente"
	OrderStatusSold     OrderStatus = "Vendido"
	OrderStatusRejected OrderStatus = "Rechazado"
)

// IsValid reports whether the status is one of the three known states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusSold, OrderStatusRejected:
		return true
	}
	return false
}

// Order is an in-store sale captured by a staff member at the counter.
// Total is derived from the detail snapshots, never taken from input.
type Order struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	NameClient  string          `gorm:"column:name_client;size:50;not null" json:"nameClient"`
	NameCompany *string         `gorm:"column:name_company;size:50" json:"nameCompany,omitempty"`
	Status      OrderStatus     `gorm:"column:status;size:25;not null;default:'Pendiente'" json:"status"`
	Total       decimal.Decimal `gorm:"column:total;type:decimal(10,2);not null" json:"total"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Details     []OrderDetail   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderDetails"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderDetail is one line of an in-store order with the price snapshotted at
// reconciliation time.
type OrderDetail struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unitPrice"`
	SubTotal  decimal.Decimal `gorm:"column:sub_total;type:decimal(10,2);not null" json:"subTotal"`
}

func (d *OrderDetail) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
