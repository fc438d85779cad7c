package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	dsn := "file:users_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))

	// Minimal argon parameters keep the hashing fast in tests.
	svc, err := NewService(NewRepository(conn), config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	return svc
}

func TestServiceCreate_issuesTempPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, "admin", CreateInput{
		Username: "muhasebe1",
		Role:     enums.UserRoleMuhasebe,
	})
	require.NoError(t, err)
	assert.Len(t, result.TempPassword, 12)
	assert.Equal(t, "muhasebe1", result.User.DisplayName)
	assert.True(t, result.User.Active)

	user, err := svc.VerifyCredentials(ctx, "muhasebe1", result.TempPassword)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)
}

func TestServiceCreate_duplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "admin", CreateInput{Username: "ayse", Role: enums.UserRoleAdmin})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "admin", CreateInput{Username: "ayse", Role: enums.UserRoleMuhasebe})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestServiceVerifyCredentials_rejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, "admin", CreateInput{Username: "ayse", Role: enums.UserRoleMuhasebe})
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "ayse", "wrong-password")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	inactive := false
	_, err = svc.Update(ctx, "admin", result.User.ID, UpdateInput{Active: &inactive})
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "ayse", result.TempPassword)
	require.Error(t, err)
}

func TestServiceResetPassword_invalidatesOld(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, "admin", CreateInput{Username: "ayse", Role: enums.UserRoleMuhasebe})
	require.NoError(t, err)

	fresh, err := svc.ResetPassword(ctx, "admin", result.User.ID)
	require.NoError(t, err)
	require.NotEqual(t, result.TempPassword, fresh)

	_, err = svc.VerifyCredentials(ctx, "ayse", result.TempPassword)
	require.Error(t, err)
	_, err = svc.VerifyCredentials(ctx, "ayse", fresh)
	require.NoError(t, err)
}
