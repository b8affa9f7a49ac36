package user

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/entities"
	"Resto-POS-Backend/pkg/jwt"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}))
	return db
}

func newTestService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewUserService(NewUserRepository(db), jwt.NewJWTService()), db
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "owner@resto.test",
		FullName: "Owner",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.Role)
	assert.True(t, first.IsSuperuser)
	assert.True(t, first.IsActive)

	second, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "waiter@resto.test",
		FullName: "Waiter",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, second.Role)
	assert.False(t, second.IsSuperuser)
}

// Concurrent first registrations must produce exactly one admin. Uses a
// file-backed database so writers genuinely contend.
func TestConcurrentRegistrationsSingleAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	svc := NewUserService(NewUserRepository(db), jwt.NewJWTService())
	ctx := context.Background()

	const workers = 5
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.Register(ctx, domain.RegisterRequest{
				Email:    fmt.Sprintf("user%d@resto.test", i),
				FullName: "Racer",
				Password: "secret123",
			})
		}(i)
	}
	wg.Wait()

	var admins int64
	require.NoError(t, db.Model(&entities.User{}).
		Where("role = ?", domain.RoleAdmin).
		Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "owner@resto.test",
		FullName: "Owner",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Email:    "owner@resto.test",
		FullName: "Someone Else",
		Password: "secret456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "owner@resto.test",
		FullName: "Owner",
		Password: "secret123",
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "owner@resto.test",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, registered.ID, res.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "owner@resto.test",
		FullName: "Owner",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "owner@resto.test",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "nobody@resto.test",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "owner@resto.test",
		FullName: "Owner",
		Password: "secret123",
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateUser(ctx, registered.ID, domain.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{
		Email:    "owner@resto.test",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestTokenCarriesRoleScopes(t *testing.T) {
	db := setupTestDB(t)
	jwtService := jwt.NewJWTService()
	svc := NewUserService(NewUserRepository(db), jwtService)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "owner@resto.test",
		FullName: "Owner",
		Password: "secret123",
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "owner@resto.test",
		Password: "secret123",
	})
	require.NoError(t, err)

	userID, role, scopes, err := jwtService.GetUserDetailByToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, domain.RoleAdmin, role)
	// admin subsumes every lower scope
	assert.ElementsMatch(t, []string{
		domain.ScopeAdmin,
		domain.ScopeManager,
		domain.ScopeStaff,
		domain.ScopeAuthenticated,
	}, scopes)
}

func TestCreateUpdateDeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "manager@resto.test",
		FullName: "Manager",
		Password: "secret123",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, created.Role)

	updated, err := svc.UpdateUser(ctx, created.ID, domain.UpdateUserRequest{
		FullName: "Shift Manager",
		Role:     domain.RoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, "Shift Manager", updated.FullName)
	assert.Equal(t, domain.RoleStaff, updated.Role)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	_, err = svc.GetUserByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
