package cheques

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/internal/banks"
	"github.com/escafood/kasadefteri-backend/internal/customers"
	"github.com/escafood/kasadefteri-backend/internal/ledger"
	"github.com/escafood/kasadefteri-backend/internal/suppliers"
	"github.com/escafood/kasadefteri-backend/pkg/dates"
	"github.com/escafood/kasadefteri-backend/pkg/db"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

const testActor = "tester"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:cheques_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.BankAccount{},
		&models.Customer{},
		&models.Supplier{},
		&models.Tag{},
		&models.Transaction{},
		&models.Cheque{},
		&models.ChequeMove{},
	))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(
		db.NewWithConn(conn),
		NewRepository(conn),
		ledger.NewRepository(conn),
		banks.NewRepository(conn),
		customers.NewRepository(conn),
		suppliers.NewRepository(conn),
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

func seedCustomer(t *testing.T, conn *gorm.DB, name string) *models.Customer {
	t.Helper()

	customer := &models.Customer{Name: name, CreatedBy: testActor}
	require.NoError(t, conn.Create(customer).Error)
	return customer
}

func seedSupplier(t *testing.T, conn *gorm.DB, name string) *models.Supplier {
	t.Helper()

	supplier := &models.Supplier{Name: name, CreatedBy: testActor}
	require.NoError(t, conn.Create(supplier).Error)
	return supplier
}

func createReceivable(t *testing.T, svc Service, customerID uuid.UUID, amount string) *models.Cheque {
	t.Helper()

	cheque, err := svc.Create(context.Background(), testActor, CreateInput{
		CekNo:        "CK-" + uuid.NewString()[:8],
		Amount:       decimal.RequireFromString(amount),
		EntryDate:    "2026-03-01",
		MaturityDate: "2026-04-15",
		Direction:    enums.ChequeDirectionAlacak,
		CustomerID:   &customerID,
	})
	require.NoError(t, err)
	return cheque
}

func createPayable(t *testing.T, svc Service, supplierID uuid.UUID, amount string) *models.Cheque {
	t.Helper()

	cheque, err := svc.Create(context.Background(), testActor, CreateInput{
		CekNo:        "CK-" + uuid.NewString()[:8],
		Amount:       decimal.RequireFromString(amount),
		EntryDate:    "2026-03-01",
		MaturityDate: "2026-04-20",
		Direction:    enums.ChequeDirectionBorc,
		SupplierID:   &supplierID,
	})
	require.NoError(t, err)
	return cheque
}

func chequeEntries(t *testing.T, conn *gorm.DB, chequeID uuid.UUID) []models.Transaction {
	t.Helper()

	var entries []models.Transaction
	require.NoError(t, conn.Where("cheque_id = ?", chequeID).Order("created_at ASC").Find(&entries).Error)
	return entries
}

func TestServiceCreate_initialStatusAndMove(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	supplier := seedSupplier(t, conn, "Demir Ambalaj")

	receivable := createReceivable(t, svc, customer.ID, "2500.00")
	assert.Equal(t, enums.ChequeStatusKasada, receivable.Status)

	payable := createPayable(t, svc, supplier.ID, "1800.00")
	assert.Equal(t, enums.ChequeStatusOdemede, payable.Status)

	detail, err := svc.GetByID(context.Background(), receivable.ID)
	require.NoError(t, err)
	require.Len(t, detail.Moves, 1)
	assert.Equal(t, enums.ChequeMoveActionGiris, detail.Moves[0].Action)

	detail, err = svc.GetByID(context.Background(), payable.ID)
	require.NoError(t, err)
	require.Len(t, detail.Moves, 1)
	assert.Equal(t, enums.ChequeMoveActionKeside, detail.Moves[0].Action)
}

func TestServiceCreate_rejectsCrossLinks(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	supplier := seedSupplier(t, conn, "Demir Ambalaj")

	_, err := svc.Create(context.Background(), testActor, CreateInput{
		CekNo:        "CK-1",
		Amount:       decimal.RequireFromString("100.00"),
		EntryDate:    "2026-03-01",
		MaturityDate: "2026-04-01",
		Direction:    enums.ChequeDirectionAlacak,
		SupplierID:   &supplier.ID,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdateStatus_sendToBank(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	cheque := createReceivable(t, svc, customer.ID, "2500.00")

	updated, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status:        enums.ChequeStatusBankadaTahsilde,
		BankAccountID: &bank.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChequeStatusBankadaTahsilde, updated.Status)
	require.NotNil(t, updated.BankAccountID)
	assert.Equal(t, bank.ID, *updated.BankAccountID)

	// A plain custody move books no ledger entry.
	assert.Empty(t, chequeEntries(t, conn, cheque.ID))

	detail, err := svc.GetByID(context.Background(), cheque.ID)
	require.NoError(t, err)
	require.Len(t, detail.Moves, 2)
	assert.Equal(t, enums.ChequeMoveActionDurum, detail.Moves[1].Action)
}

func TestServiceUpdateStatus_collectViaBank(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	cheque := createReceivable(t, svc, customer.ID, "2500.00")

	updated, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status:        enums.ChequeStatusTahsilEdildi,
		BankAccountID: &bank.ID,
		IsoDate:       "2026-04-15",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChequeStatusTahsilEdildi, updated.Status)
	require.NotNil(t, updated.PaidAt)
	require.NotNil(t, updated.PaymentTransactionID)

	entries := chequeEntries(t, conn, cheque.ID)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, enums.TransactionTypeCekTahsil, entry.Type)
	assert.Equal(t, enums.TransactionSourceBanka, entry.Source)
	assert.True(t, entry.BankDelta.Equal(decimal.RequireFromString("2500.00")))
	assert.True(t, entry.Incoming.IsZero())
	require.NotNil(t, entry.Counterparty)
	assert.Equal(t, "Yilmaz Gida", *entry.Counterparty)

	detail, err := svc.GetByID(context.Background(), cheque.ID)
	require.NoError(t, err)
	require.Len(t, detail.Moves, 2)
	assert.Equal(t, enums.ChequeMoveActionTahsilat, detail.Moves[1].Action)
	require.NotNil(t, detail.Moves[1].TransactionID)
	assert.Equal(t, entry.ID, *detail.Moves[1].TransactionID)
}

func TestServiceUpdateStatus_collectIntoCash(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	cheque := createReceivable(t, svc, customer.ID, "750.00")

	_, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status:  enums.ChequeStatusTahsilEdildi,
		IsoDate: "2026-04-15",
	})
	require.NoError(t, err)

	entries := chequeEntries(t, conn, cheque.ID)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, enums.TransactionSourceKasa, entry.Source)
	assert.True(t, entry.Incoming.Equal(decimal.RequireFromString("750.00")))
	assert.True(t, entry.BankDelta.IsZero())
	assert.True(t, entry.BalanceAfter.Equal(decimal.RequireFromString("750.00")))
}

func TestServiceUpdateStatus_bounce(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	cheque := createReceivable(t, svc, customer.ID, "900.00")

	updated, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status:  enums.ChequeStatusKarsiliksiz,
		IsoDate: "2026-04-16",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChequeStatusKarsiliksiz, updated.Status)

	entries := chequeEntries(t, conn, cheque.ID)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, enums.TransactionTypeCekKarsiliksiz, entry.Type)
	assert.Equal(t, enums.TransactionSourceCek, entry.Source)
	assert.True(t, entry.Incoming.IsZero())
	assert.True(t, entry.Outgoing.IsZero())
	assert.True(t, entry.BankDelta.IsZero())
	require.NotNil(t, entry.DisplayOutgoing)
	assert.True(t, entry.DisplayOutgoing.Equal(decimal.RequireFromString("900.00")))
}

func TestServiceUpdateStatus_endorse(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	supplier := seedSupplier(t, conn, "Demir Ambalaj")
	cheque := createReceivable(t, svc, customer.ID, "1200.00")

	updated, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status:     enums.ChequeStatusOdemede,
		SupplierID: &supplier.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChequeStatusOdemede, updated.Status)
	require.NotNil(t, updated.SupplierID)
	assert.Equal(t, supplier.ID, *updated.SupplierID)

	// Endorsement only moves custody; no money moved yet.
	assert.Empty(t, chequeEntries(t, conn, cheque.ID))

	detail, err := svc.GetByID(context.Background(), cheque.ID)
	require.NoError(t, err)
	require.Len(t, detail.Moves, 2)
	assert.Equal(t, enums.ChequeMoveActionCiro, detail.Moves[1].Action)
}

func TestServiceUpdateStatus_endorseUnknownSupplierKeepsLink(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	cheque := createReceivable(t, svc, customer.ID, "1200.00")

	unknown := uuid.New()
	updated, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status:     enums.ChequeStatusOdemede,
		SupplierID: &unknown,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChequeStatusOdemede, updated.Status)
	assert.Nil(t, updated.SupplierID)
}

func TestServiceUpdateStatus_invalidTransition(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	cheque := createReceivable(t, svc, customer.ID, "100.00")

	_, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status: enums.ChequeStatusOdendi,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// Nothing was booked for the rejected transition.
	assert.Empty(t, chequeEntries(t, conn, cheque.ID))
}

func TestServicePay_settlesOnce(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	supplier := seedSupplier(t, conn, "Demir Ambalaj")
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	cheque := createPayable(t, svc, supplier.ID, "3200.00")

	paid, err := svc.Pay(context.Background(), testActor, cheque.ID, PayInput{
		BankAccountID: bank.ID,
		IsoDate:       "2026-04-20",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ChequeStatusOdendi, paid.Status)
	require.NotNil(t, paid.PaidAt)
	require.NotNil(t, paid.PaidBankID)
	assert.Equal(t, bank.ID, *paid.PaidBankID)
	require.NotNil(t, paid.PaymentTransactionID)

	entries := chequeEntries(t, conn, cheque.ID)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, enums.TransactionTypeCekOdeme, entry.Type)
	assert.Equal(t, enums.TransactionSourceBanka, entry.Source)
	assert.True(t, entry.BankDelta.Equal(decimal.RequireFromString("-3200.00")))
	require.NotNil(t, entry.DocumentNo)
	assert.Equal(t, "BNK-CKS-20/04-0001", *entry.DocumentNo)
	require.NotNil(t, entry.Counterparty)
	assert.Equal(t, "Demir Ambalaj", *entry.Counterparty)

	_, err = svc.Pay(context.Background(), testActor, cheque.ID, PayInput{
		BankAccountID: bank.ID,
		IsoDate:       "2026-04-20",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// Still exactly one payment entry after the rejected retry.
	assert.Len(t, chequeEntries(t, conn, cheque.ID), 1)
}

func TestServicePay_documentNumbersIncrement(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	supplier := seedSupplier(t, conn, "Demir Ambalaj")
	bank := seedBank(t, conn, "Ziraat Vadesiz")

	first := createPayable(t, svc, supplier.ID, "100.00")
	second := createPayable(t, svc, supplier.ID, "200.00")

	paidFirst, err := svc.Pay(context.Background(), testActor, first.ID, PayInput{BankAccountID: bank.ID, IsoDate: "2026-04-20"})
	require.NoError(t, err)
	paidSecond, err := svc.Pay(context.Background(), testActor, second.ID, PayInput{BankAccountID: bank.ID, IsoDate: "2026-04-20"})
	require.NoError(t, err)

	firstEntry := chequeEntries(t, conn, paidFirst.ID)[0]
	secondEntry := chequeEntries(t, conn, paidSecond.ID)[0]
	assert.Equal(t, "BNK-CKS-20/04-0001", *firstEntry.DocumentNo)
	assert.Equal(t, "BNK-CKS-20/04-0002", *secondEntry.DocumentNo)
}

func TestServicePay_rejectsReceivable(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	cheque := createReceivable(t, svc, customer.ID, "100.00")

	_, err := svc.Pay(context.Background(), testActor, cheque.ID, PayInput{BankAccountID: bank.ID})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdate_frozenAfterSettlement(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	supplier := seedSupplier(t, conn, "Demir Ambalaj")
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	cheque := createPayable(t, svc, supplier.ID, "500.00")

	_, err := svc.Pay(context.Background(), testActor, cheque.ID, PayInput{BankAccountID: bank.ID, IsoDate: "2026-04-20"})
	require.NoError(t, err)

	newAmount := decimal.RequireFromString("600.00")
	_, err = svc.Update(context.Background(), testActor, cheque.ID, UpdateInput{Amount: &newAmount})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// Descriptive fields stay editable after settlement.
	note := "elden teslim"
	updated, err := svc.Update(context.Background(), testActor, cheque.ID, UpdateInput{Description: &note})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, note, *updated.Description)
}

func TestServiceDelete_rules(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	supplier := seedSupplier(t, conn, "Demir Ambalaj")
	bank := seedBank(t, conn, "Ziraat Vadesiz")

	paid := createPayable(t, svc, supplier.ID, "500.00")
	_, err := svc.Pay(context.Background(), testActor, paid.ID, PayInput{BankAccountID: bank.ID, IsoDate: "2026-04-20"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), testActor, paid.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	open := createPayable(t, svc, supplier.ID, "700.00")
	require.NoError(t, svc.Delete(context.Background(), testActor, open.ID))

	_, err = svc.GetByID(context.Background(), open.ID)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListSummaryBucketsAndSearch(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")
	ctx := context.Background()

	today := dates.Today()
	mk := func(cekNo string, maturityOffsetDays int) {
		maturity, err := dates.AddDays(today, maturityOffsetDays)
		require.NoError(t, err)
		_, err = svc.Create(ctx, testActor, CreateInput{
			CekNo:        cekNo,
			Amount:       decimal.RequireFromString("100.00"),
			EntryDate:    today,
			MaturityDate: maturity,
			Direction:    enums.ChequeDirectionAlacak,
			CustomerID:   &customer.ID,
		})
		require.NoError(t, err)
	}
	mk("CK-GECMIS", -5)
	mk("CK-YAKIN", 3)
	mk("CK-AYICI", 20)
	mk("CK-UZAK", 90)

	result, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, result.Cheques, 4)
	assert.True(t, decimal.RequireFromString("400.00").Equal(result.TotalAlacak))
	assert.Equal(t, 1, result.OverdueCount)
	assert.Equal(t, 1, result.DueSoonCount)
	assert.Equal(t, 1, result.DueMonthCount)

	found, err := svc.List(ctx, ListFilter{Search: "YAKIN"})
	require.NoError(t, err)
	require.Len(t, found.Cheques, 1)
	assert.Equal(t, "CK-YAKIN", found.Cheques[0].CekNo)
}

func TestServiceCreate_unknownReferencesDetach(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	unknownCustomer := uuid.New()
	unknownBank := uuid.New()
	cheque, err := svc.Create(context.Background(), testActor, CreateInput{
		CekNo:         "CK-SAHIPSIZ",
		Amount:        decimal.RequireFromString("900.00"),
		EntryDate:     "2026-03-01",
		MaturityDate:  "2026-04-15",
		Direction:     enums.ChequeDirectionAlacak,
		CustomerID:    &unknownCustomer,
		BankAccountID: &unknownBank,
	})
	require.NoError(t, err)
	assert.Nil(t, cheque.CustomerID)
	assert.Nil(t, cheque.BankAccountID)
	assert.Equal(t, enums.ChequeStatusKasada, cheque.Status)

	unknownSupplier := uuid.New()
	payable, err := svc.Create(context.Background(), testActor, CreateInput{
		CekNo:        "CK-SAHIPSIZ-2",
		Amount:       decimal.RequireFromString("450.00"),
		EntryDate:    "2026-03-01",
		MaturityDate: "2026-04-20",
		Direction:    enums.ChequeDirectionBorc,
		SupplierID:   &unknownSupplier,
	})
	require.NoError(t, err)
	assert.Nil(t, payable.SupplierID)
}

func TestServiceUpdateStatus_rejectsSameStatus(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	customer := seedCustomer(t, conn, "Yilmaz Gida")

	cheque := createReceivable(t, svc, customer.ID, "1000.00")

	_, err := svc.UpdateStatus(context.Background(), testActor, cheque.ID, StatusInput{
		Status:  enums.ChequeStatusKasada,
		IsoDate: "2026-04-15",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceListPayable_maturityCutoffAndBankFilter(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	supplier := seedSupplier(t, conn, "Demir Ambalaj")
	bank := seedBank(t, conn, "Ziraat Vadesiz")
	ctx := context.Background()

	today := dates.Today()
	mk := func(cekNo string, maturityOffsetDays int, bankID *uuid.UUID) {
		maturity, err := dates.AddDays(today, maturityOffsetDays)
		require.NoError(t, err)
		_, err = svc.Create(ctx, testActor, CreateInput{
			CekNo:         cekNo,
			Amount:        decimal.RequireFromString("300.00"),
			EntryDate:     today,
			MaturityDate:  maturity,
			Direction:     enums.ChequeDirectionBorc,
			SupplierID:    &supplier.ID,
			BankAccountID: bankID,
		})
		require.NoError(t, err)
	}
	mk("CK-GECIKMIS", -5, nil)
	mk("CK-YARIN", 10, &bank.ID)
	mk("CK-SONRA", 30, nil)

	payables, err := svc.ListPayable(ctx, nil)
	require.NoError(t, err)
	require.Len(t, payables, 2)
	assert.Equal(t, "CK-YARIN", payables[0].CekNo)
	assert.Equal(t, "CK-SONRA", payables[1].CekNo)

	banked, err := svc.ListPayable(ctx, &bank.ID)
	require.NoError(t, err)
	require.Len(t, banked, 1)
	assert.Equal(t, "CK-YARIN", banked[0].CekNo)
}
