package attachments

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

func newTestService(t *testing.T, maxUploadMB int) Service {
	t.Helper()

	dsn := "file:attachments_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Attachment{}))

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	svc, err := NewService(NewRepository(conn), store, config.AttachmentsConfig{MaxUploadMB: maxUploadMB})
	require.NoError(t, err)
	return svc
}

func TestServiceUpload_roundTrip(t *testing.T) {
	svc := newTestService(t, 1)
	ctx := context.Background()

	attachment, err := svc.Upload(ctx, "tester", UploadInput{
		FileName: "cek-scan.pdf",
		MimeType: "application/pdf",
		Body:     strings.NewReader("fake pdf body"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cek-scan.pdf", attachment.FileName)
	assert.Equal(t, int64(len("fake pdf body")), attachment.SizeBytes)
	assert.True(t, strings.HasSuffix(attachment.StoredName, ".pdf"))
	assert.NotEqual(t, attachment.FileName, attachment.StoredName)

	stored, body, err := svc.Open(ctx, attachment.ID)
	require.NoError(t, err)
	defer body.Close()
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "fake pdf body", string(content))
	assert.Equal(t, "application/pdf", stored.MimeType)
}

func TestServiceUpload_enforcesSizeLimit(t *testing.T) {
	svc := newTestService(t, 1)

	oversized := strings.NewReader(strings.Repeat("x", 1<<20+1))
	_, err := svc.Upload(context.Background(), "tester", UploadInput{
		FileName: "big.bin",
		Body:     oversized,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceDelete_removesRecordAndBody(t *testing.T) {
	svc := newTestService(t, 1)
	ctx := context.Background()

	attachment, err := svc.Upload(ctx, "tester", UploadInput{
		FileName: "fis.jpg",
		Body:     strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "tester", attachment.ID))

	_, _, err = svc.Open(ctx, attachment.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
