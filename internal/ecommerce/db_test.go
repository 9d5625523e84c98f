package ecommerce

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/candyland-dev/candyland-backend/internal/reconcile"
	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

type gormClientLoader struct {
	db *gorm.DB
}

func (l gormClientLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := l.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Client{},
		&models.Category{}, &models.Product{},
		&models.EcommerceOrder{}, &models.EcommerceDetail{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db.NewWithConn(conn)
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := openTestDB(t)
	svc, err := NewService(
		NewRepository(client.DB()),
		client,
		reconcile.NewEngine(),
		gormClientLoader{db: client.DB()},
	)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, client
}

func mustCreateClient(t *testing.T, client *db.Client) *models.Client {
	t.Helper()
	shopper := &models.Client{
		Email:        fmt.Sprintf("shopper_%s@candyland.test", uuid.NewString()),
		PasswordHash: "hash",
		FirstName:    "Ana",
		LastName:     "Gómez",
		Phone:        "555-0101",
		Address:      "Calle 1",
		IsActive:     true,
	}
	if err := client.DB().Create(shopper).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	return shopper
}

func mustCreateProduct(t *testing.T, client *db.Client, name, price string, stock int) *models.Product {
	t.Helper()
	category := &models.Category{
		Name:     fmt.Sprintf("Cat %s", uuid.NewString()),
		Slug:     fmt.Sprintf("cat-%s", uuid.NewString()),
		IsActive: true,
	}
	if err := client.DB().Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	product := &models.Product{
		Name:        name,
		Slug:        fmt.Sprintf("%s-%s", name, uuid.NewString()),
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		IsAvailable: true,
		IsActive:    true,
		CategoryID:  category.ID,
	}
	if err := client.DB().Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func currentStock(t *testing.T, client *db.Client, productID uuid.UUID) int {
	t.Helper()
	var stock int
	if err := client.DB().Raw("SELECT stock FROM products WHERE id = ?", productID).Scan(&stock).Error; err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return stock
}
