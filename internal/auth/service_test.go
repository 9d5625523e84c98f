package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/candyland-dev/candyland-backend/internal/directory"
	pkgauth "github.com/candyland-dev/candyland-backend/pkg/auth"
	"github.com/candyland-dev/candyland-backend/pkg/config"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/security"
)

var testJWT = config.JWTConfig{
	Secret:    "unit-test-secret",
	Issuer:    "candyland-test",
	ExpiresIn: "1h",
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Role{}, &models.User{}, &models.Client{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	repo := directory.NewRepository(conn)
	svc, err := NewService(repo, repo, testJWT)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, conn
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB: 16 * 1024, ArgonTime: 1, ArgonParallelism: 1,
	})
	require.NoError(t, err)
	return hash
}

func seedUser(t *testing.T, conn *gorm.DB, email, password string, active bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:          email,
		PasswordHash:   mustHash(t, password),
		FirstName:      "Marta",
		LastName:       "Quiroga",
		DocumentNumber: "28555111",
		Address:        "Sucursal Centro",
		IsActive:       active,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func seedClient(t *testing.T, conn *gorm.DB, email, password string, active bool) *models.Client {
	t.Helper()
	client := &models.Client{
		Email:        email,
		PasswordHash: mustHash(t, password),
		FirstName:    "Bruno",
		LastName:     "Paz",
		Phone:        "1155550000",
		Address:      "Av. Dulce 42",
		IsActive:     active,
	}
	require.NoError(t, conn.Create(client).Error)
	return client
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, invalidCredentials, typed.Message())
}

func TestLoginStaff(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, conn, "marta@candyland.test", "caramelo-9", true)

	res, err := svc.LoginStaff(ctx, "marta@candyland.test", "caramelo-9")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, 3600, res.ExpiresIn)
	assert.Equal(t, user.ID, res.Profile.ID)
	assert.Equal(t, "Marta", res.Profile.FirstName)

	claims, err := pkgauth.ParseAccessToken(testJWT, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pkgauth.RealmStaff, claims.Realm)
	assert.Equal(t, user.ID, claims.SubjectID)

	var reloaded models.User
	require.NoError(t, conn.First(&reloaded, "id = ?", user.ID).Error)
	assert.NotNil(t, reloaded.LastLogin)
}

func TestLoginStaffWrongPassword(t *testing.T) {
	svc, conn := newTestService(t)
	seedUser(t, conn, "marta@candyland.test", "caramelo-9", true)

	_, err := svc.LoginStaff(context.Background(), "marta@candyland.test", "nope")
	requireUnauthorized(t, err)
}

func TestLoginStaffInactiveLooksLikeMissing(t *testing.T) {
	svc, conn := newTestService(t)
	seedUser(t, conn, "baja@candyland.test", "caramelo-9", false)

	_, err := svc.LoginStaff(context.Background(), "baja@candyland.test", "caramelo-9")
	requireUnauthorized(t, err)

	_, err = svc.LoginStaff(context.Background(), "nadie@candyland.test", "caramelo-9")
	requireUnauthorized(t, err)
}

func TestLoginClient(t *testing.T) {
	svc, conn := newTestService(t)
	client := seedClient(t, conn, "bruno@shop.test", "chocolate-7", true)

	res, err := svc.LoginClient(context.Background(), "bruno@shop.test", "chocolate-7")
	require.NoError(t, err)

	assert.Equal(t, models.DefaultClientRole, res.Profile.Role)

	claims, err := pkgauth.ParseAccessToken(testJWT, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pkgauth.RealmClient, claims.Realm)
	assert.Equal(t, client.ID, claims.SubjectID)
}

func TestLoginClientInactive(t *testing.T) {
	svc, conn := newTestService(t)
	seedClient(t, conn, "baja@shop.test", "chocolate-7", false)

	_, err := svc.LoginClient(context.Background(), "baja@shop.test", "chocolate-7")
	requireUnauthorized(t, err)
}

func TestTokenRealmIsolation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	seedUser(t, conn, "marta@candyland.test", "caramelo-9", true)
	seedClient(t, conn, "bruno@shop.test", "chocolate-7", true)

	staffRes, err := svc.LoginStaff(ctx, "marta@candyland.test", "caramelo-9")
	require.NoError(t, err)
	clientRes, err := svc.LoginClient(ctx, "bruno@shop.test", "chocolate-7")
	require.NoError(t, err)

	staffClaims, err := pkgauth.ParseAccessToken(testJWT, staffRes.AccessToken)
	require.NoError(t, err)
	clientClaims, err := pkgauth.ParseAccessToken(testJWT, clientRes.AccessToken)
	require.NoError(t, err)

	// A shopper token must not open the staff door, and vice versa.
	_, err = svc.ValidateStaff(ctx, clientClaims)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = svc.ValidateClient(ctx, staffClaims)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = svc.ValidateStaff(ctx, staffClaims)
	require.NoError(t, err)
	_, err = svc.ValidateClient(ctx, clientClaims)
	require.NoError(t, err)
}

func TestValidateStaffDeactivatedPrincipal(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, conn, "marta@candyland.test", "caramelo-9", true)

	res, err := svc.LoginStaff(ctx, "marta@candyland.test", "caramelo-9")
	require.NoError(t, err)
	claims, err := pkgauth.ParseAccessToken(testJWT, res.AccessToken)
	require.NoError(t, err)

	require.NoError(t, conn.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = svc.ValidateStaff(ctx, claims)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}
