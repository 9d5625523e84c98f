package orders

import (
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
		&models.Role{}, &models.User{},
		&models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderDetail{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db.NewWithConn(conn)
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := openTestDB(t)
	svc, err := NewService(NewRepository(client.DB()), client, reconcile.NewEngine())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, client
}

func mustCreateStaffUser(t *testing.T, client *db.Client) *models.User {
	t.Helper()
	user := &models.User{
		Email:          fmt.Sprintf("staff_%s@candyland.test", uuid.NewString()),
		PasswordHash:   "hash",
		FirstName:      "Counter",
		LastName:       "Staff",
		DocumentNumber: "12345678",
		Address:        "Sucursal Centro",
		IsActive:       true,
	}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
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
