package cards

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

type stubEntryLister struct {
	entries []models.Transaction
}

func (s *stubEntryLister) ListByCard(_ context.Context, _ uuid.UUID) ([]models.Transaction, error) {
	return s.entries, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:cards_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.BankAccount{}, &models.Card{}))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB, lister cardEntryLister) Service {
	t.Helper()

	if lister == nil {
		lister = &stubEntryLister{}
	}
	svc, err := NewService(NewRepository(conn), lister)
	require.NoError(t, err)
	return svc
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func expense(isoDate, amount string) models.Transaction {
	value := dec(amount)
	return models.Transaction{
		IsoDate:         isoDate,
		Type:            enums.TransactionTypeKartMasraf,
		Source:          enums.TransactionSourceBanka,
		Direction:       enums.TransactionDirectionCikis,
		DisplayOutgoing: &value,
	}
}

func TestServiceCreate_validatesCycleDays(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()

	card, err := svc.Create(ctx, "tester", CreateInput{
		Name:      "Sirket Karti",
		CardLimit: dec("50000.00"),
		CutoffDay: 28,
		DueDay:    3,
	})
	require.NoError(t, err)
	assert.True(t, card.Active)
	assert.True(t, card.CurrentRisk.IsZero())

	_, err = svc.Create(ctx, "tester", CreateInput{Name: "X", CutoffDay: 0, DueDay: 3})
	require.Error(t, err)
	_, err = svc.Create(ctx, "tester", CreateInput{Name: "X", CutoffDay: 28, DueDay: 32})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdate_partialFields(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()

	card, err := svc.Create(ctx, "tester", CreateInput{
		Name:      "Sirket Karti",
		CardLimit: dec("50000.00"),
		CutoffDay: 28,
		DueDay:    3,
	})
	require.NoError(t, err)

	inactive := false
	newLimit := dec("75000.00")
	updated, err := svc.Update(ctx, "tester", card.ID, UpdateInput{
		CardLimit: &newLimit,
		Active:    &inactive,
	})
	require.NoError(t, err)
	assert.True(t, updated.CardLimit.Equal(newLimit))
	assert.False(t, updated.Active)
	assert.Equal(t, "Sirket Karti", updated.Name)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "tester", *updated.UpdatedBy)
}

func TestServiceStatementSummary_splitsAroundClosing(t *testing.T) {
	conn := newTestDB(t)
	lister := &stubEntryLister{entries: []models.Transaction{
		expense("2026-01-20", "400.00"), // inside, closing 2026-01-28
		expense("2026-01-28", "100.00"), // closing day counts
		expense("2026-01-31", "250.00"), // next statement
	}}
	svc := newTestService(t, conn, lister)
	ctx := context.Background()

	card, err := svc.Create(ctx, "tester", CreateInput{
		Name:      "Sirket Karti",
		CardLimit: dec("50000.00"),
		CutoffDay: 28,
		DueDay:    3,
	})
	require.NoError(t, err)

	summary, err := svc.StatementSummary(ctx, card.ID, "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-28", summary.ClosingDate)
	assert.Equal(t, "2026-02-03", summary.DueDate)
	assert.True(t, summary.StatementDebt.Equal(dec("500.00")), "got %s", summary.StatementDebt)
	assert.True(t, summary.UpcomingSpend.Equal(dec("250.00")), "got %s", summary.UpcomingSpend)
	assert.True(t, summary.AvailableLimit.Equal(dec("50000.00")))
}

func TestServiceStatementSummary_unknownCard(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn, nil)

	_, err := svc.StatementSummary(context.Background(), uuid.New(), "2026-01-31")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
