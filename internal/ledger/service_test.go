package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/internal/banks"
	"github.com/escafood/kasadefteri-backend/internal/cards"
	"github.com/escafood/kasadefteri-backend/internal/customers"
	"github.com/escafood/kasadefteri-backend/internal/posterminals"
	"github.com/escafood/kasadefteri-backend/internal/suppliers"
	"github.com/escafood/kasadefteri-backend/internal/tags"
	"github.com/escafood/kasadefteri-backend/pkg/db"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

const testActor = "tester"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:ledger_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.BankAccount{},
		&models.Customer{},
		&models.Supplier{},
		&models.Card{},
		&models.PosTerminal{},
		&models.Tag{},
		&models.Transaction{},
	))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(
		db.NewWithConn(conn),
		NewRepository(conn),
		banks.NewRepository(conn),
		cards.NewRepository(conn),
		customers.NewRepository(conn),
		suppliers.NewRepository(conn),
		posterminals.NewRepository(conn),
		tags.NewRepository(conn),
	)
	require.NoError(t, err)
	return svc
}

func seedBank(t *testing.T, conn *gorm.DB, name string) *models.BankAccount {
	t.Helper()

	bank := &models.BankAccount{Name: name, CreatedBy: testActor}
	require.NoError(t, conn.Create(bank).Error)
	return bank
}

func seedCard(t *testing.T, conn *gorm.DB, risk string) *models.Card {
	t.Helper()

	card := &models.Card{
		Name:        "Sirket Karti",
		CardLimit:   dec("50000.00"),
		CurrentRisk: dec(risk),
		CutoffDay:   2,
		DueDay:      7,
		Active:      true,
		CreatedBy:   testActor,
	}
	require.NoError(t, conn.Create(card).Error)
	return card
}

func loadCard(t *testing.T, conn *gorm.DB, id uuid.UUID) *models.Card {
	t.Helper()

	var card models.Card
	require.NoError(t, conn.First(&card, "id = ?", id).Error)
	return &card
}

func catPtr(c enums.TransactionCategory) *enums.TransactionCategory {
	return &c
}

func TestServiceCashFlow_runningBalance(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	first, err := svc.CashIn(ctx, testActor, EntryInput{
		IsoDate: "2026-03-01",
		Amount:  dec("100.00"),
	})
	require.NoError(t, err)
	assert.True(t, first.BalanceAfter.Equal(dec("100.00")), "got %s", first.BalanceAfter)

	second, err := svc.CashOut(ctx, testActor, EntryInput{
		IsoDate:  "2026-03-02",
		Amount:   dec("40.00"),
		Category: catPtr(enums.TransactionCategoryGenelGider),
	})
	require.NoError(t, err)
	assert.True(t, second.BalanceAfter.Equal(dec("60.00")), "got %s", second.BalanceAfter)
}

func TestServiceBankEntries_neverMoveCashBalance(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	ctx := context.Background()

	_, err := svc.CashIn(ctx, testActor, EntryInput{IsoDate: "2026-03-01", Amount: dec("100.00")})
	require.NoError(t, err)

	bankEntry, err := svc.BankIn(ctx, testActor, BankEntryInput{
		EntryInput:    EntryInput{IsoDate: "2026-03-02", Amount: dec("5000.00")},
		BankAccountID: bank.ID,
	})
	require.NoError(t, err)
	assert.True(t, bankEntry.BankDelta.Equal(dec("5000.00")))
	assert.True(t, bankEntry.Incoming.IsZero())
	// The snapshot carries the cash balance forward untouched.
	assert.True(t, bankEntry.BalanceAfter.Equal(dec("100.00")), "got %s", bankEntry.BalanceAfter)

	outEntry, err := svc.BankOut(ctx, testActor, BankEntryInput{
		EntryInput: EntryInput{
			IsoDate:  "2026-03-03",
			Amount:   dec("750.00"),
			Category: catPtr(enums.TransactionCategoryGenelGider),
		},
		BankAccountID: bank.ID,
	})
	require.NoError(t, err)
	assert.True(t, outEntry.BankDelta.Equal(dec("-750.00")))
	assert.True(t, outEntry.Outgoing.IsZero())
	assert.True(t, outEntry.BalanceAfter.Equal(dec("100.00")))
}

func TestServicePosCollection_bookedAsPair(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	ctx := context.Background()

	result, err := svc.PosCollection(ctx, testActor, PosCollectionInput{
		IsoDate:       "2026-03-05",
		BankAccountID: bank.ID,
		Brut:          dec("1000.00"),
		Komisyon:      dec("20.00"),
	})
	require.NoError(t, err)

	net := result.Net
	assert.Equal(t, enums.TransactionTypePosTahsilat, net.Type)
	assert.True(t, net.BankDelta.Equal(dec("980.00")), "got %s", net.BankDelta)
	require.NotNil(t, net.PosNet)
	assert.True(t, net.PosNet.Equal(dec("980.00")))
	require.NotNil(t, net.PosEffectiveRate)
	assert.True(t, net.PosEffectiveRate.Equal(dec("0.02")), "got %s", net.PosEffectiveRate)

	commission := result.Commission
	assert.Equal(t, enums.TransactionTypePosKomisyon, commission.Type)
	assert.True(t, commission.BankDelta.Equal(dec("-20.00")), "got %s", commission.BankDelta)
	require.NotNil(t, commission.PosBrut)
	assert.True(t, commission.PosBrut.Equal(dec("1000.00")))

	var count int64
	require.NoError(t, conn.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestServicePosCollection_rejectsCommissionOverGross(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	bank := seedBank(t, conn, "Ziraat Vadesiz")

	_, err := svc.PosCollection(context.Background(), testActor, PosCollectionInput{
		IsoDate:       "2026-03-05",
		BankAccountID: bank.ID,
		Brut:          dec("100.00"),
		Komisyon:      dec("150.00"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestEffectiveRate(t *testing.T) {
	assert.True(t, EffectiveRate(dec("1000.00"), dec("20.00")).Equal(dec("0.02")))
	assert.True(t, EffectiveRate(dec("0.00"), dec("20.00")).IsZero())
	// Rounds to four decimals.
	assert.True(t, EffectiveRate(dec("300.00"), dec("10.00")).Equal(dec("0.0333")))
}

func TestServiceCardExpense_raisesRisk(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	card := seedCard(t, conn, "0.00")
	ctx := context.Background()

	entry, err := svc.CardExpense(ctx, testActor, CardExpenseInput{
		IsoDate:  "2026-03-05",
		CardID:   card.ID,
		Amount:   dec("500.00"),
		Category: enums.TransactionCategoryGenelGider,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionTypeKartMasraf, entry.Type)
	assert.True(t, entry.Incoming.IsZero())
	assert.True(t, entry.Outgoing.IsZero())
	require.NotNil(t, entry.DisplayOutgoing)
	assert.True(t, entry.DisplayOutgoing.Equal(dec("500.00")))

	assert.True(t, loadCard(t, conn, card.ID).CurrentRisk.Equal(dec("500.00")))
}

func TestServiceCardPayment_clampsRiskAtZero(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	card := seedCard(t, conn, "500.00")
	ctx := context.Background()

	entry, err := svc.CardPayment(ctx, testActor, CardPaymentInput{
		IsoDate: "2026-03-06",
		CardID:  card.ID,
		Amount:  dec("600.00"),
	})
	require.NoError(t, err)
	// No bank account given, so the payment leaves the cash drawer.
	assert.Equal(t, enums.TransactionSourceKasa, entry.Source)
	assert.True(t, entry.Outgoing.Equal(dec("600.00")))

	assert.True(t, loadCard(t, conn, card.ID).CurrentRisk.IsZero())
}

func TestServiceCardPayment_fromBank(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	card := seedCard(t, conn, "800.00")
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	ctx := context.Background()

	entry, err := svc.CardPayment(ctx, testActor, CardPaymentInput{
		IsoDate:       "2026-03-06",
		CardID:        card.ID,
		BankAccountID: &bank.ID,
		Amount:        dec("300.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionSourceBanka, entry.Source)
	assert.True(t, entry.BankDelta.Equal(dec("-300.00")))
	assert.True(t, entry.Outgoing.IsZero())

	assert.True(t, loadCard(t, conn, card.ID).CurrentRisk.Equal(dec("500.00")))
}

func TestServiceDelete_reversesCardRisk(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	card := seedCard(t, conn, "0.00")
	ctx := context.Background()

	expense, err := svc.CardExpense(ctx, testActor, CardExpenseInput{
		IsoDate:  "2026-03-05",
		CardID:   card.ID,
		Amount:   dec("500.00"),
		Category: enums.TransactionCategoryGenelGider,
	})
	require.NoError(t, err)
	require.True(t, loadCard(t, conn, card.ID).CurrentRisk.Equal(dec("500.00")))

	require.NoError(t, svc.Delete(ctx, testActor, expense.ID))
	assert.True(t, loadCard(t, conn, card.ID).CurrentRisk.IsZero())

	_, err = svc.FindByID(ctx, expense.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDelete_reversesPaymentRisk(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	card := seedCard(t, conn, "500.00")
	ctx := context.Background()

	payment, err := svc.CardPayment(ctx, testActor, CardPaymentInput{
		IsoDate: "2026-03-06",
		CardID:  card.ID,
		Amount:  dec("200.00"),
	})
	require.NoError(t, err)
	require.True(t, loadCard(t, conn, card.ID).CurrentRisk.Equal(dec("300.00")))

	require.NoError(t, svc.Delete(ctx, testActor, payment.ID))
	assert.True(t, loadCard(t, conn, card.ID).CurrentRisk.Equal(dec("500.00")))
}

func TestServiceDelete_excludedFromLaterBalances(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	first, err := svc.CashIn(ctx, testActor, EntryInput{IsoDate: "2026-03-01", Amount: dec("100.00")})
	require.NoError(t, err)
	_, err = svc.CashIn(ctx, testActor, EntryInput{IsoDate: "2026-03-02", Amount: dec("50.00")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testActor, first.ID))

	third, err := svc.CashIn(ctx, testActor, EntryInput{IsoDate: "2026-03-03", Amount: dec("25.00")})
	require.NoError(t, err)
	assert.True(t, third.BalanceAfter.Equal(dec("75.00")), "got %s", third.BalanceAfter)
}

func TestServiceCashIn_attachesTags(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	tag := &models.Tag{Name: "nakliye", CreatedBy: testActor}
	require.NoError(t, conn.Create(tag).Error)

	entry, err := svc.CashIn(ctx, testActor, EntryInput{
		IsoDate: "2026-03-01",
		Amount:  dec("100.00"),
		TagIDs:  []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)
	require.Len(t, entry.Tags, 1)
	assert.Equal(t, "nakliye", entry.Tags[0].Name)

	_, err = svc.CashIn(ctx, testActor, EntryInput{
		IsoDate: "2026-03-01",
		Amount:  dec("100.00"),
		TagIDs:  []uuid.UUID{uuid.New()},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceDailyLedger(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.CashIn(ctx, testActor, EntryInput{IsoDate: "2026-03-01", Amount: dec("100.00")})
	require.NoError(t, err)
	_, err = svc.CashOut(ctx, testActor, EntryInput{
		IsoDate:  "2026-03-01",
		Amount:   dec("30.00"),
		Category: catPtr(enums.TransactionCategoryGenelGider),
	})
	require.NoError(t, err)
	_, err = svc.CashIn(ctx, testActor, EntryInput{IsoDate: "2026-03-10", Amount: dec("999.00")})
	require.NoError(t, err)

	result, err := svc.DailyLedger(ctx, RangeInput{FromDate: "2026-03-01", ToDate: "2026-03-01"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.True(t, result.TotalIncoming.Equal(dec("100.00")))
	assert.True(t, result.TotalOutgoing.Equal(dec("30.00")))
	assert.True(t, result.ClosingBalance.Equal(dec("70.00")), "got %s", result.ClosingBalance)

	_, err = svc.DailyLedger(ctx, RangeInput{FromDate: "2026-03-10", ToDate: "2026-03-01"})
	require.Error(t, err)
}
