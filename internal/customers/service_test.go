package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

const testActor = "tester"

func newTestService(t *testing.T) Service {
	t.Helper()

	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Customer{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestCreateAndLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, testActor, CreateInput{Name: "Yilmaz Gida"})
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yilmaz Gida", found.Name)
	assert.Equal(t, testActor, found.CreatedBy)
}

func TestBulkSaveCreatesAndUpdates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	existing, err := svc.Create(ctx, testActor, CreateInput{Name: "Eski Ad"})
	require.NoError(t, err)

	saved, err := svc.BulkSave(ctx, testActor, []SaveItem{
		{Name: "Yeni Musteri"},
		{ID: &existing.ID, Name: "Yeni Ad"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "Yeni Musteri", saved[0].Name)
	assert.Equal(t, "Yeni Ad", saved[1].Name)

	updated, err := svc.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yeni Ad", updated.Name)
}

func TestBulkSaveCollectsFailures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	missing := uuid.New()
	saved, err := svc.BulkSave(ctx, testActor, []SaveItem{
		{Name: "Gecerli"},
		{ID: &missing, Name: "Kayip"},
	})
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// the good row still lands
	require.Len(t, saved, 1)
	assert.Equal(t, "Gecerli", saved[0].Name)
}

func TestListFiltersBySearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testActor, CreateInput{Name: "Yilmaz Gida"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testActor, CreateInput{Name: "Demir Insaat"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "Yilmaz")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Yilmaz Gida", list[0].Name)
}
