package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	pkgauth "github.com/hamzasiddiqui/bazaarline-backend/pkg/auth"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/config"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/security"
)

func newFixture(t *testing.T) (Service, *gorm.DB, *security.Hasher, *pkgauth.TokenManager) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(db.AllModels()...))
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	hasher := security.NewHasher(config.PasswordConfig{
		ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1,
		ArgonSaltLen: 16, ArgonKeyLen: 32,
	})
	tokens := pkgauth.NewTokenManager(config.JWTConfig{
		Secret: "test-secret", Issuer: "bazaarline-test", ExpirationMinutes: 60,
	})
	return NewService(users.NewRepository(gdb), hasher, tokens, nil), gdb, hasher, tokens
}

func seedAccount(t *testing.T, gdb *gorm.DB, hasher *security.Hasher, email, password string, role enums.UserRole, active bool) *models.User {
	t.Helper()
	hash := ""
	if password != "" {
		var err error
		hash, err = hasher.Hash(password)
		require.NoError(t, err)
	}
	user := &models.User{Email: email, Password: hash, Name: "Staff", Role: role, IsActive: active}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func TestLoginSuccess(t *testing.T) {
	svc, gdb, hasher, tokens := newFixture(t)
	admin := seedAccount(t, gdb, hasher, "admin@x.pk", "s3cret", enums.RoleAdmin, true)

	res, err := svc.Login(context.Background(), "admin@x.pk", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, res.User.ID)

	claims, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, enums.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, gdb, hasher, _ := newFixture(t)
	seedAccount(t, gdb, hasher, "admin@x.pk", "s3cret", enums.RoleAdmin, true)

	_, err := svc.Login(context.Background(), "admin@x.pk", "wrong")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	svc, _, _, _ := newFixture(t)

	_, err := svc.Login(context.Background(), "nobody@x.pk", "s3cret")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, "invalid email or password", typed.Message())
}

func TestLoginGuestAccountRejected(t *testing.T) {
	svc, gdb, hasher, _ := newFixture(t)
	seedAccount(t, gdb, hasher, "guest@x.pk", "", enums.RoleCustomer, true)

	_, err := svc.Login(context.Background(), "guest@x.pk", "")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, gdb, hasher, _ := newFixture(t)
	seedAccount(t, gdb, hasher, "admin@x.pk", "s3cret", enums.RoleAdmin, false)

	_, err := svc.Login(context.Background(), "admin@x.pk", "s3cret")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginCustomerForbidden(t *testing.T) {
	svc, gdb, hasher, _ := newFixture(t)
	seedAccount(t, gdb, hasher, "cust@x.pk", "s3cret", enums.RoleCustomer, true)

	_, err := svc.Login(context.Background(), "cust@x.pk", "s3cret")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}
