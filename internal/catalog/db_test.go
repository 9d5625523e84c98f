package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductImage{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db.NewWithConn(conn)
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := openTestDB(t)
	svc, err := NewService(NewRepository(client.DB()), client)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, client
}

func mustCreateCategory(t *testing.T, svc Service, name string) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: name})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateProduct(t *testing.T, svc Service, categoryID uuid.UUID, name, price string, stock int) *models.Product {
	t.Helper()
	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		IsAvailable: true,
		CategoryID:  categoryID,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
