package ledger

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/internal/banks"
	"github.com/escafood/kasadefteri-backend/internal/cards"
	"github.com/escafood/kasadefteri-backend/internal/customers"
	"github.com/escafood/kasadefteri-backend/internal/posterminals"
	"github.com/escafood/kasadefteri-backend/internal/suppliers"
	"github.com/escafood/kasadefteri-backend/internal/tags"
	"github.com/escafood/kasadefteri-backend/pkg/dates"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records ledger entries. Every mutating call takes the acting
// user explicitly; caller identity never travels through hidden state.
type Service interface {
	CashIn(ctx context.Context, actor string, input EntryInput) (*models.Transaction, error)
	CashOut(ctx context.Context, actor string, input EntryInput) (*models.Transaction, error)
	BankIn(ctx context.Context, actor string, input BankEntryInput) (*models.Transaction, error)
	BankOut(ctx context.Context, actor string, input BankEntryInput) (*models.Transaction, error)
	PosCollection(ctx context.Context, actor string, input PosCollectionInput) (*PosCollectionResult, error)
	CardExpense(ctx context.Context, actor string, input CardExpenseInput) (*models.Transaction, error)
	CardPayment(ctx context.Context, actor string, input CardPaymentInput) (*models.Transaction, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	DailyLedger(ctx context.Context, input RangeInput) (*DailyLedgerResult, error)
}

// EntryInput captures a plain cash movement.
type EntryInput struct {
	IsoDate      string
	Amount       decimal.Decimal
	Description  *string
	Counterparty *string
	Category     *enums.TransactionCategory
	CustomerID   *uuid.UUID
	SupplierID   *uuid.UUID
	TagIDs       []uuid.UUID
}

// BankEntryInput captures a bank movement tied to an account.
type BankEntryInput struct {
	EntryInput
	BankAccountID uuid.UUID
}

// PosCollectionInput captures one terminal settlement. Brut is the
// gross card total; Komisyon the bank's cut.
type PosCollectionInput struct {
	IsoDate       string
	BankAccountID uuid.UUID
	TerminalID    *uuid.UUID
	Brut          decimal.Decimal
	Komisyon      decimal.Decimal
	Description   *string
	CustomerID    *uuid.UUID
	TagIDs        []uuid.UUID
}

// PosCollectionResult returns the pair of rows a settlement produces.
type PosCollectionResult struct {
	Net        *models.Transaction
	Commission *models.Transaction
}

// CardExpenseInput captures a purchase on a company credit card.
type CardExpenseInput struct {
	IsoDate     string
	CardID      uuid.UUID
	Amount      decimal.Decimal
	Category    enums.TransactionCategory
	Description *string
	SupplierID  *uuid.UUID
	TagIDs      []uuid.UUID
}

// CardPaymentInput captures paying down card debt, from a bank account
// when one is given, otherwise from the cash drawer.
type CardPaymentInput struct {
	IsoDate       string
	CardID        uuid.UUID
	BankAccountID *uuid.UUID
	Amount        decimal.Decimal
	Description   *string
	TagIDs        []uuid.UUID
}

// RangeInput bounds a ledger listing. Dates are inclusive.
type RangeInput struct {
	FromDate string
	ToDate   string
	Source   enums.TransactionSource
}

// DailyLedgerResult is the ledger report for a date range.
type DailyLedgerResult struct {
	Entries        []models.Transaction
	TotalIncoming  decimal.Decimal
	TotalOutgoing  decimal.Decimal
	ClosingBalance decimal.Decimal
}

type service struct {
	tx        txRunner
	repo      Repository
	banks     banks.Repository
	cards     cards.Repository
	customers customers.Repository
	suppliers suppliers.Repository
	terminals posterminals.Repository
	tags      tags.Repository
	now       func() time.Time
}

// NewService wires the ledger service with its repositories.
func NewService(
	tx txRunner,
	repo Repository,
	bankRepo banks.Repository,
	cardRepo cards.Repository,
	customerRepo customers.Repository,
	supplierRepo suppliers.Repository,
	terminalRepo posterminals.Repository,
	tagRepo tags.Repository,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if bankRepo == nil {
		return nil, fmt.Errorf("bank account repository required")
	}
	if cardRepo == nil {
		return nil, fmt.Errorf("card repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if supplierRepo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	if terminalRepo == nil {
		return nil, fmt.Errorf("pos terminal repository required")
	}
	if tagRepo == nil {
		return nil, fmt.Errorf("tag repository required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		banks:     bankRepo,
		cards:     cardRepo,
		customers: customerRepo,
		suppliers: supplierRepo,
		terminals: terminalRepo,
		tags:      tagRepo,
		now:       time.Now,
	}, nil
}

func (s *service) CashIn(ctx context.Context, actor string, input EntryInput) (*models.Transaction, error) {
	if err := validateBase(actor, input.IsoDate, input.Amount); err != nil {
		return nil, err
	}

	var created *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		counterparty, err := s.resolveCustomer(ctx, tx, input.CustomerID, input.Counterparty)
		if err != nil {
			return err
		}

		entry := &models.Transaction{
			IsoDate:      input.IsoDate,
			Type:         enums.TransactionTypeNakitGiris,
			Source:       enums.TransactionSourceKasa,
			Direction:    enums.TransactionDirectionGiris,
			Category:     input.Category,
			Counterparty: counterparty,
			Description:  input.Description,
			Incoming:     input.Amount,
			CustomerID:   input.CustomerID,
			CreatedBy:    actor,
		}
		created, err = s.persist(ctx, tx, entry, input.TagIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) CashOut(ctx context.Context, actor string, input EntryInput) (*models.Transaction, error) {
	if err := validateBase(actor, input.IsoDate, input.Amount); err != nil {
		return nil, err
	}
	if input.Category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category required for cash out")
	}

	var created *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		counterparty, err := s.resolveSupplier(ctx, tx, input.SupplierID, input.Counterparty)
		if err != nil {
			return err
		}

		entry := &models.Transaction{
			IsoDate:      input.IsoDate,
			Type:         enums.TransactionTypeNakitCikis,
			Source:       enums.TransactionSourceKasa,
			Direction:    enums.TransactionDirectionCikis,
			Category:     input.Category,
			Counterparty: counterparty,
			Description:  input.Description,
			Outgoing:     input.Amount,
			SupplierID:   input.SupplierID,
			CreatedBy:    actor,
		}
		created, err = s.persist(ctx, tx, entry, input.TagIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) BankIn(ctx context.Context, actor string, input BankEntryInput) (*models.Transaction, error) {
	if err := validateBase(actor, input.IsoDate, input.Amount); err != nil {
		return nil, err
	}
	if input.BankAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank account id required")
	}

	var created *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.ensureBankAccount(ctx, tx, input.BankAccountID); err != nil {
			return err
		}
		counterparty, err := s.resolveCustomer(ctx, tx, input.CustomerID, input.Counterparty)
		if err != nil {
			return err
		}

		entry := &models.Transaction{
			IsoDate:         input.IsoDate,
			Type:            enums.TransactionTypeBankaGiris,
			Source:          enums.TransactionSourceBanka,
			Direction:       enums.TransactionDirectionGiris,
			Category:        input.Category,
			Counterparty:    counterparty,
			Description:     input.Description,
			BankDelta:       input.Amount,
			DisplayIncoming: &input.Amount,
			BankAccountID:   &input.BankAccountID,
			CustomerID:      input.CustomerID,
			CreatedBy:       actor,
		}
		created, err = s.persist(ctx, tx, entry, input.TagIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) BankOut(ctx context.Context, actor string, input BankEntryInput) (*models.Transaction, error) {
	if err := validateBase(actor, input.IsoDate, input.Amount); err != nil {
		return nil, err
	}
	if input.BankAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank account id required")
	}
	if input.Category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category required for bank out")
	}

	var created *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.ensureBankAccount(ctx, tx, input.BankAccountID); err != nil {
			return err
		}
		counterparty, err := s.resolveSupplier(ctx, tx, input.SupplierID, input.Counterparty)
		if err != nil {
			return err
		}

		entry := &models.Transaction{
			IsoDate:         input.IsoDate,
			Type:            enums.TransactionTypeBankaCikis,
			Source:          enums.TransactionSourceBanka,
			Direction:       enums.TransactionDirectionCikis,
			Category:        input.Category,
			Counterparty:    counterparty,
			Description:     input.Description,
			BankDelta:       input.Amount.Neg(),
			DisplayOutgoing: &input.Amount,
			BankAccountID:   &input.BankAccountID,
			SupplierID:      input.SupplierID,
			CreatedBy:       actor,
		}
		created, err = s.persist(ctx, tx, entry, input.TagIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// EffectiveRate computes komisyon/brut rounded to 4 decimals, zero when
// brut is zero.
func EffectiveRate(brut, komisyon decimal.Decimal) decimal.Decimal {
	if brut.IsZero() {
		return decimal.Zero
	}
	return komisyon.Div(brut).Round(4)
}

func (s *service) PosCollection(ctx context.Context, actor string, input PosCollectionInput) (*PosCollectionResult, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if !dates.IsValid(input.IsoDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid iso date")
	}
	if input.BankAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank account id required")
	}
	if input.Brut.IsNegative() || input.Komisyon.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amounts must not be negative")
	}
	if input.Komisyon.GreaterThan(input.Brut) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission cannot exceed gross amount")
	}

	net := input.Brut.Sub(input.Komisyon)
	rate := EffectiveRate(input.Brut, input.Komisyon)

	var result PosCollectionResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		account, err := s.ensureBankAccount(ctx, tx, input.BankAccountID)
		if err != nil {
			return err
		}
		if input.TerminalID != nil {
			if _, err := s.terminals.WithTx(tx).FindByID(ctx, *input.TerminalID); err != nil {
				return notFoundOr(err, "pos terminal not found")
			}
		}
		counterparty, err := s.resolveCustomer(ctx, tx, input.CustomerID, nil)
		if err != nil {
			return err
		}

		netDesc := input.Description
		if netDesc == nil {
			d := fmt.Sprintf("%s POS tahsilati (brut %s TL)", account.Name, input.Brut.StringFixed(2))
			netDesc = &d
		}
		netEntry := &models.Transaction{
			IsoDate:          input.IsoDate,
			Type:             enums.TransactionTypePosTahsilat,
			Source:           enums.TransactionSourceBanka,
			Direction:        enums.TransactionDirectionGiris,
			Counterparty:     counterparty,
			Description:      netDesc,
			BankDelta:        net,
			DisplayIncoming:  &net,
			PosBrut:          &input.Brut,
			PosKomisyon:      &input.Komisyon,
			PosNet:           &net,
			PosEffectiveRate: &rate,
			BankAccountID:    &input.BankAccountID,
			CustomerID:       input.CustomerID,
			CreatedBy:        actor,
		}
		created, err := s.persist(ctx, tx, netEntry, input.TagIDs)
		if err != nil {
			return err
		}
		result.Net = created

		commDesc := input.Description
		if commDesc == nil {
			d := fmt.Sprintf("%s POS komisyonu (%%%s)", account.Name, rate.Mul(decimal.NewFromInt(100)).StringFixed(2))
			commDesc = &d
		}
		commEntry := &models.Transaction{
			IsoDate:          input.IsoDate,
			Type:             enums.TransactionTypePosKomisyon,
			Source:           enums.TransactionSourceBanka,
			Direction:        enums.TransactionDirectionCikis,
			Description:      commDesc,
			BankDelta:        input.Komisyon.Neg(),
			DisplayOutgoing:  &input.Komisyon,
			PosBrut:          &input.Brut,
			PosKomisyon:      &input.Komisyon,
			PosNet:           &net,
			PosEffectiveRate: &rate,
			BankAccountID:    &input.BankAccountID,
			CreatedBy:        actor,
		}
		created, err = s.persist(ctx, tx, commEntry, input.TagIDs)
		if err != nil {
			return err
		}
		result.Commission = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) CardExpense(ctx context.Context, actor string, input CardExpenseInput) (*models.Transaction, error) {
	if err := validateBase(actor, input.IsoDate, input.Amount); err != nil {
		return nil, err
	}
	if input.CardID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card id required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}

	var created *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cardRepo := s.cards.WithTx(tx)
		card, err := cardRepo.FindByID(ctx, input.CardID)
		if err != nil {
			return notFoundOr(err, "card not found")
		}
		counterparty, err := s.resolveSupplier(ctx, tx, input.SupplierID, nil)
		if err != nil {
			return err
		}

		category := input.Category
		entry := &models.Transaction{
			IsoDate:         input.IsoDate,
			Type:            enums.TransactionTypeKartMasraf,
			Source:          enums.TransactionSourceBanka,
			Direction:       enums.TransactionDirectionCikis,
			Category:        &category,
			Counterparty:    counterparty,
			Description:     input.Description,
			DisplayOutgoing: &input.Amount,
			CardID:          &input.CardID,
			SupplierID:      input.SupplierID,
			CreatedBy:       actor,
		}
		created, err = s.persist(ctx, tx, entry, input.TagIDs)
		if err != nil {
			return err
		}

		return cardRepo.UpdateRisk(ctx, card.ID, card.CurrentRisk.Add(input.Amount))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) CardPayment(ctx context.Context, actor string, input CardPaymentInput) (*models.Transaction, error) {
	if err := validateBase(actor, input.IsoDate, input.Amount); err != nil {
		return nil, err
	}
	if input.CardID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card id required")
	}

	var created *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cardRepo := s.cards.WithTx(tx)
		card, err := cardRepo.FindByID(ctx, input.CardID)
		if err != nil {
			return notFoundOr(err, "card not found")
		}

		entry := &models.Transaction{
			IsoDate:     input.IsoDate,
			Type:        enums.TransactionTypeKartOdeme,
			Direction:   enums.TransactionDirectionCikis,
			Description: input.Description,
			CardID:      &input.CardID,
			CreatedBy:   actor,
		}
		if input.BankAccountID != nil {
			if _, err := s.ensureBankAccount(ctx, tx, *input.BankAccountID); err != nil {
				return err
			}
			entry.Source = enums.TransactionSourceBanka
			entry.BankDelta = input.Amount.Neg()
			entry.DisplayOutgoing = &input.Amount
			entry.BankAccountID = input.BankAccountID
		} else {
			entry.Source = enums.TransactionSourceKasa
			entry.Outgoing = input.Amount
		}

		created, err = s.persist(ctx, tx, entry, input.TagIDs)
		if err != nil {
			return err
		}

		// Risk never drops below zero, overpayments clamp.
		updated := card.CurrentRisk.Sub(input.Amount)
		if updated.IsNegative() {
			updated = decimal.Zero
		}
		return cardRepo.UpdateRisk(ctx, card.ID, updated)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete soft-deletes an entry and unwinds its card-risk side effect
// inside the same transaction.
func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		entry, err := repo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "transaction not found")
		}

		if entry.CardID != nil {
			cardRepo := s.cards.WithTx(tx)
			card, err := cardRepo.FindByID(ctx, *entry.CardID)
			if err == nil {
				switch entry.Type {
				case enums.TransactionTypeKartMasraf:
					amount := expenseAmount(entry)
					updated := card.CurrentRisk.Sub(amount)
					if updated.IsNegative() {
						updated = decimal.Zero
					}
					if err := cardRepo.UpdateRisk(ctx, card.ID, updated); err != nil {
						return err
					}
				case enums.TransactionTypeKartOdeme:
					amount := paymentAmount(entry)
					if err := cardRepo.UpdateRisk(ctx, card.ID, card.CurrentRisk.Add(amount)); err != nil {
						return err
					}
				}
			}
		}

		if err := repo.ClearTags(ctx, entry); err != nil {
			return err
		}
		return repo.SoftDelete(ctx, entry.ID, actor, s.now().UTC())
	})
}

func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "transaction not found")
	}
	return entry, nil
}

func (s *service) DailyLedger(ctx context.Context, input RangeInput) (*DailyLedgerResult, error) {
	from := input.FromDate
	to := input.ToDate
	if from == "" {
		from = dates.Today()
	}
	if to == "" {
		to = dates.Today()
	}
	if !dates.IsValid(from) || !dates.IsValid(to) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date range")
	}
	if from > to {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "range start after range end")
	}

	entries, err := s.repo.List(ctx, ListFilter{
		FromDate: from,
		ToDate:   to,
		Source:   input.Source,
	})
	if err != nil {
		return nil, err
	}

	result := &DailyLedgerResult{Entries: entries}
	for _, entry := range entries {
		result.TotalIncoming = result.TotalIncoming.Add(entry.Incoming)
		result.TotalOutgoing = result.TotalOutgoing.Add(entry.Outgoing)
	}
	if len(entries) > 0 {
		result.ClosingBalance = entries[len(entries)-1].BalanceAfter
	}
	return result, nil
}

// persist computes the balance snapshot, stores the entry and attaches
// its tags. Must run inside the enclosing transaction.
func (s *service) persist(ctx context.Context, tx *gorm.DB, entry *models.Transaction, tagIDs []uuid.UUID) (*models.Transaction, error) {
	repo := s.repo.WithTx(tx)

	prior, err := repo.ListCashEntriesThrough(ctx, entry.IsoDate, nil)
	if err != nil {
		return nil, err
	}
	entry.BalanceAfter = ComputeBalanceAfter(prior, entry.Incoming, entry.Outgoing, entry.Source)

	if err := repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if len(tagIDs) > 0 {
		found, err := s.tags.WithTx(tx).FindByIDs(ctx, tagIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(uniqueIDs(tagIDs)) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more tags not found")
		}
		if err := repo.ReplaceTags(ctx, entry, found); err != nil {
			return nil, err
		}
		entry.Tags = found
	}
	return entry, nil
}

func (s *service) ensureBankAccount(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.BankAccount, error) {
	account, err := s.banks.WithTx(tx).FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "bank account not found")
	}
	return account, nil
}

func (s *service) resolveCustomer(ctx context.Context, tx *gorm.DB, id *uuid.UUID, fallback *string) (*string, error) {
	if id == nil {
		return fallback, nil
	}
	customer, err := s.customers.WithTx(tx).FindByID(ctx, *id)
	if err != nil {
		return nil, notFoundOr(err, "customer not found")
	}
	return &customer.Name, nil
}

func (s *service) resolveSupplier(ctx context.Context, tx *gorm.DB, id *uuid.UUID, fallback *string) (*string, error) {
	if id == nil {
		return fallback, nil
	}
	supplier, err := s.suppliers.WithTx(tx).FindByID(ctx, *id)
	if err != nil {
		return nil, notFoundOr(err, "supplier not found")
	}
	return &supplier.Name, nil
}

func validateBase(actor string, isoDate string, amount decimal.Decimal) error {
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if !dates.IsValid(isoDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid iso date")
	}
	if !amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return nil
}

func notFoundOr(err error, message string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

// expenseAmount recovers the booked amount of a card expense row.
func expenseAmount(entry *models.Transaction) decimal.Decimal {
	if entry.DisplayOutgoing != nil {
		return *entry.DisplayOutgoing
	}
	return entry.Outgoing
}

// paymentAmount recovers the booked amount of a card payment row,
// whichever pool it was paid from.
func paymentAmount(entry *models.Transaction) decimal.Decimal {
	if entry.Source == enums.TransactionSourceKasa {
		return entry.Outgoing
	}
	if entry.DisplayOutgoing != nil {
		return *entry.DisplayOutgoing
	}
	return entry.BankDelta.Neg()
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
