// Package invoices renders order invoices as PDF documents.
package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

// Line is one billed row of an invoice.
type Line struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	SubTotal    decimal.Decimal
}

// Document is the renderer's input, shared by in-store and online orders.
type Document struct {
	Number      uuid.UUID
	Kind        string
	IssuedAt    time.Time
	ClientName  string
	CompanyName string
	Status      models.OrderStatus
	Lines       []Line
	Total       decimal.Decimal
}

// FromOrder maps an in-store order onto an invoice document. Details must be
// hydrated with their products for the descriptions to carry names.
func FromOrder(order *models.Order) Document {
	doc := Document{
		Number:     order.ID,
		Kind:       "Venta en sucursal",
		IssuedAt:   order.CreatedAt,
		ClientName: order.NameClient,
		Status:     order.Status,
		Total:      order.Total,
	}
	if order.NameCompany != nil {
		doc.CompanyName = *order.NameCompany
	}
	for _, d := range order.Details {
		doc.Lines = append(doc.Lines, Line{
			Description: productName(d.Product),
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			SubTotal:    d.SubTotal,
		})
	}
	return doc
}

// FromEcommerceOrder maps an online order onto an invoice document.
func FromEcommerceOrder(order *models.EcommerceOrder) Document {
	doc := Document{
		Number:     order.ID,
		Kind:       "Venta online",
		IssuedAt:   order.CreatedAt,
		ClientName: order.NameClient,
		Status:     order.Status,
		Total:      order.Total,
	}
	if order.NameCompany != nil {
		doc.CompanyName = *order.NameCompany
	}
	for _, d := range order.Details {
		doc.Lines = append(doc.Lines, Line{
			Description: productName(d.Product),
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			SubTotal:    d.SubTotal,
		})
	}
	return doc
}

func productName(p *models.Product) string {
	if p == nil {
		return "Producto eliminado"
	}
	return p.Name
}
