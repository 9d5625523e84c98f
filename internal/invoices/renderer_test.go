package invoices

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

func sampleOrder() *models.Order {
	company := "Dulces SRL"
	return &models.Order{
		ID:          uuid.New(),
		NameClient:  "Carla Méndez",
		NameCompany: &company,
		Status:      models.OrderStatusSold,
		Total:       decimal.RequireFromString("150.00"),
		CreatedAt:   time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Details: []models.OrderDetail{
			{
				Product:   &models.Product{Name: "Alfajor de maicena"},
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("45.00"),
				SubTotal:  decimal.RequireFromString("90.00"),
			},
			{
				Product:   &models.Product{Name: "Trufa de chocolate"},
				Quantity:  3,
				UnitPrice: decimal.RequireFromString("20.00"),
				SubTotal:  decimal.RequireFromString("60.00"),
			},
		},
	}
}

func TestFromOrder(t *testing.T) {
	doc := FromOrder(sampleOrder())

	assert.Equal(t, "Venta en sucursal", doc.Kind)
	assert.Equal(t, "Carla Méndez", doc.ClientName)
	assert.Equal(t, "Dulces SRL", doc.CompanyName)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "Alfajor de maicena", doc.Lines[0].Description)
	assert.Equal(t, "150.00", doc.Total.StringFixed(2))
}

func TestFromOrderMissingProduct(t *testing.T) {
	order := sampleOrder()
	order.Details[0].Product = nil

	doc := FromOrder(order)
	assert.Equal(t, "Producto eliminado", doc.Lines[0].Description)
}

func TestFromEcommerceOrder(t *testing.T) {
	order := &models.EcommerceOrder{
		ID:         uuid.New(),
		NameClient: "Bruno Paz",
		Status:     models.OrderStatusPending,
		Total:      decimal.RequireFromString("62.00"),
		CreatedAt:  time.Now(),
		Details: []models.EcommerceDetail{
			{
				Product:   &models.Product{Name: "Bombón de fruta"},
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("20.00"),
				SubTotal:  decimal.RequireFromString("40.00"),
			},
		},
	}

	doc := FromEcommerceOrder(order)
	assert.Equal(t, "Venta online", doc.Kind)
	assert.Empty(t, doc.CompanyName)
	require.Len(t, doc.Lines, 1)
}

func TestRenderProducesPDF(t *testing.T) {
	renderer := NewRenderer("")

	data, err := renderer.Render(FromOrder(sampleOrder()))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderEmptyLines(t *testing.T) {
	renderer := NewRenderer("Candyland")

	data, err := renderer.Render(Document{
		Number:     uuid.New(),
		Kind:       "Venta en sucursal",
		IssuedAt:   time.Now(),
		ClientName: "Sin detalle",
		Status:     models.OrderStatusPending,
		Total:      decimal.Zero,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
