package ecommerce

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
)

func TestCreateTwoLineCheckout(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	shopper := mustCreateClient(t, client)
	box := mustCreateProduct(t, client, "Caja Surtida", "20.00", 10)
	cake := mustCreateProduct(t, client, "Cheesecake", "22.00", 5)

	order, err := svc.Create(ctx, shopper.ID, CreateOrderInput{
		NameClient: "Ana",
		Lines: []LineInput{
			{ProductID: box.ID, Quantity: 2},
			{ProductID: cake.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("62.00")))
	require.Len(t, order.Details, 2)
	subTotals := map[string]bool{}
	for _, d := range order.Details {
		subTotals[d.SubTotal.StringFixed(2)] = true
	}
	assert.True(t, subTotals["40.00"])
	assert.True(t, subTotals["22.00"])

	assert.Equal(t, 8, currentStock(t, client, box.ID))
	assert.Equal(t, 4, currentStock(t, client, cake.ID))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, shopper.ID, order.ClientID)
	assert.Nil(t, order.UserID)
}

func TestCreateAllowsOverselling(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	shopper := mustCreateClient(t, client)
	scarce := mustCreateProduct(t, client, "Edición Limitada", "10.00", 1)

	order, err := svc.Create(ctx, shopper.ID, CreateOrderInput{
		NameClient: "Ana",
		Lines:      []LineInput{{ProductID: scarce.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("40.00")))
	assert.Equal(t, -3, currentStock(t, client, scarce.ID))
}

func TestCreateRequiresKnownClient(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	product := mustCreateProduct(t, client, "Gomitas", "1.50", 30)

	_, err := svc.Create(ctx, uuid.New(), CreateOrderInput{
		NameClient: "Nadie",
		Lines:      []LineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, 30, currentStock(t, client, product.ID))
}

func TestUpdateRestoresBeforeReapplying(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	shopper := mustCreateClient(t, client)
	product := mustCreateProduct(t, client, "Brownies", "4.00", 10)

	order, err := svc.Create(ctx, shopper.ID, CreateOrderInput{
		NameClient: "Ana",
		Lines:      []LineInput{{ProductID: product.ID, Quantity: 6}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, currentStock(t, client, product.ID))

	newLines := []LineInput{{ProductID: product.ID, Quantity: 2}}
	updated, err := svc.Update(ctx, order.ID, UpdateOrderInput{Lines: &newLines})
	require.NoError(t, err)

	assert.Equal(t, 8, currentStock(t, client, product.ID))
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("8.00")))
}

func TestUpdateAssignsStaffHandler(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	shopper := mustCreateClient(t, client)
	product := mustCreateProduct(t, client, "Palmeritas", "2.50", 20)

	staff := &models.User{
		Email:          "handler@candyland.test",
		PasswordHash:   "hash",
		FirstName:      "Hugo",
		LastName:       "Pérez",
		DocumentNumber: "87654321",
		Address:        "Sucursal Centro",
		IsActive:       true,
	}
	require.NoError(t, client.DB().Create(staff).Error)

	order, err := svc.Create(ctx, shopper.ID, CreateOrderInput{
		NameClient: "Ana",
		Lines:      []LineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	sold := models.OrderStatusSold
	updated, err := svc.Update(ctx, order.ID, UpdateOrderInput{
		Status: &sold,
		UserID: &staff.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusSold, updated.Status)
	require.NotNil(t, updated.UserID)
	assert.Equal(t, staff.ID, *updated.UserID)
}

func TestFindByClientScopesResults(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	first := mustCreateClient(t, client)
	second := mustCreateClient(t, client)
	product := mustCreateProduct(t, client, "Merengues", "1.00", 50)

	_, err := svc.Create(ctx, first.ID, CreateOrderInput{
		NameClient: "Ana",
		Lines:      []LineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, second.ID, CreateOrderInput{
		NameClient: "Eva",
		Lines:      []LineInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	mine, err := svc.FindByClient(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ClientID)
}

func TestRejectWithoutRestockKeepsStock(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	shopper := mustCreateClient(t, client)
	product := mustCreateProduct(t, client, "Donas", "2.00", 10)

	order, err := svc.Create(ctx, shopper.ID, CreateOrderInput{
		NameClient: "Ana",
		Lines:      []LineInput{{ProductID: product.ID, Quantity: 7}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, currentStock(t, client, product.ID))

	require.NoError(t, svc.RejectWithoutRestock(ctx, order.ID))

	reloaded, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRejected, reloaded.Status)
	assert.Equal(t, 3, currentStock(t, client, product.ID))
}
