package directory

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

	"github.com/candyland-dev/candyland-backend/pkg/config"
	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/db/models"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/security"
)

func newTestService(t *testing.T) (Service, *db.Client) {
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
	client := db.NewWithConn(conn)

	svc, err := NewService(NewRepository(client.DB()), client, config.PasswordConfig{
		ArgonMemoryKB: 16 * 1024, ArgonTime: 1, ArgonParallelism: 1,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, client
}

func mustCreateRole(t *testing.T, svc Service, name string) *models.Role {
	t.Helper()
	role, err := svc.CreateRole(context.Background(), CreateRoleInput{Name: name})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	return role
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	role := mustCreateRole(t, svc, "vendedor")

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Email:          "ana@candyland.test",
		Password:       "sugar-rush-123",
		FirstName:      "Ana",
		LastName:       "López",
		DocumentNumber: "30111222",
		Address:        "Sucursal Centro",
		RoleID:         &role.ID,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "sugar-rush-123", user.PasswordHash)
	ok, err := security.VerifyPassword("sugar-rush-123", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, user.Role)
	assert.Equal(t, "vendedor", user.Role.Name)
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)
	roleID := uuid.New()

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:          "x@candyland.test",
		Password:       "pw",
		FirstName:      "X",
		LastName:       "Y",
		DocumentNumber: "1",
		Address:        "Z",
		RoleID:         &roleID,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := CreateUserInput{
		Email:          "dup@candyland.test",
		Password:       "pw",
		FirstName:      "A",
		LastName:       "B",
		DocumentNumber: "2",
		Address:        "C",
	}
	_, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestGetUserInactiveIsValidationError(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Email:          "off@candyland.test",
		Password:       "pw",
		FirstName:      "A",
		LastName:       "B",
		DocumentNumber: "3",
		Address:        "C",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateUser(ctx, user.ID))

	_, err = svc.GetUser(ctx, user.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.GetUser(ctx, uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Email:          "rehash@candyland.test",
		Password:       "old-password",
		FirstName:      "A",
		LastName:       "B",
		DocumentNumber: "4",
		Address:        "C",
	})
	require.NoError(t, err)

	newPassword := "new-password"
	updated, err := svc.UpdateUser(ctx, user.ID, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)

	ok, err := security.VerifyPassword("new-password", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = security.VerifyPassword("old-password", updated.PasswordHash)
	assert.False(t, ok)
}

func TestRegisterClientDefaultsRole(t *testing.T) {
	svc, _ := newTestService(t)

	client, err := svc.RegisterClient(context.Background(), RegisterClientInput{
		Email:     "shopper@candyland.test",
		Password:  "pw",
		FirstName: "Eva",
		LastName:  "Núñez",
		Phone:     "555-0102",
		Address:   "Calle 2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultClientRole, client.Role)
	assert.True(t, client.IsActive)
}

func TestGetClientInactiveIsValidationError(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	client, err := svc.RegisterClient(ctx, RegisterClientInput{
		Email:     "inactive@candyland.test",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Phone:     "1",
		Address:   "C",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateClient(ctx, client.ID))

	_, err = svc.GetClient(ctx, client.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeactivateRoleHidesItFromUserReads(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	role := mustCreateRole(t, svc, "cajero")

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Email:          "cashier@candyland.test",
		Password:       "pw",
		FirstName:      "A",
		LastName:       "B",
		DocumentNumber: "5",
		Address:        "C",
		RoleID:         &role.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, user.Role)

	require.NoError(t, svc.DeactivateRole(ctx, role.ID))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Nil(t, users[0].Role)
}

func TestListRolesExcludesInactive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	keep := mustCreateRole(t, svc, "admin")
	drop := mustCreateRole(t, svc, "temporal")

	require.NoError(t, svc.DeactivateRole(ctx, drop.ID))

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, keep.ID, roles[0].ID)
}
