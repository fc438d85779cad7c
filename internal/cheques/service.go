package cheques

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/internal/banks"
	"github.com/escafood/kasadefteri-backend/internal/customers"
	"github.com/escafood/kasadefteri-backend/internal/ledger"
	"github.com/escafood/kasadefteri-backend/internal/suppliers"
	"github.com/escafood/kasadefteri-backend/pkg/dates"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

const (
	dueSoonWindowDays  = 7
	dueMonthWindowDays = 30
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives the cheque lifecycle. Every transition, its ledger
// side effects and the audit move commit in one database transaction.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*models.Cheque, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Detail, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	ListPayable(ctx context.Context, bankAccountID *uuid.UUID) ([]models.Cheque, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Cheque, error)
	UpdateStatus(ctx context.Context, actor string, id uuid.UUID, input StatusInput) (*models.Cheque, error)
	Pay(ctx context.Context, actor string, id uuid.UUID, input PayInput) (*models.Cheque, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

// CreateInput registers a cheque.
type CreateInput struct {
	CekNo         string
	Amount        decimal.Decimal
	EntryDate     string
	MaturityDate  string
	Direction     enums.ChequeDirection
	CustomerID    *uuid.UUID
	SupplierID    *uuid.UUID
	BankAccountID *uuid.UUID
	AttachmentID  *uuid.UUID
	Description   *string
}

// UpdateInput carries the mutable cheque fields. Direction never
// changes after creation.
type UpdateInput struct {
	CekNo        *string
	Amount       *decimal.Decimal
	EntryDate    *string
	MaturityDate *string
	Description  *string
	AttachmentID *uuid.UUID
}

// StatusInput requests a lifecycle transition.
type StatusInput struct {
	Status        enums.ChequeStatus
	BankAccountID *uuid.UUID
	SupplierID    *uuid.UUID
	IsoDate       string
	Description   *string
}

// PayInput settles a payable cheque from a bank account.
type PayInput struct {
	BankAccountID uuid.UUID
	IsoDate       string
	Description   *string
}

// Detail couples a cheque with its audit trail.
type Detail struct {
	Cheque *models.Cheque
	Moves  []models.ChequeMove
}

// ListResult is a cheque listing with maturity figures.
type ListResult struct {
	Cheques       []models.Cheque
	TotalAlacak   decimal.Decimal
	TotalBorc     decimal.Decimal
	OverdueCount  int
	DueSoonCount  int
	DueMonthCount int
}

type service struct {
	tx        txRunner
	repo      Repository
	entries   ledger.Repository
	banks     banks.Repository
	customers customers.Repository
	suppliers suppliers.Repository
	now       func() time.Time
}

// NewService wires the cheque service with its repositories.
func NewService(
	tx txRunner,
	repo Repository,
	entryRepo ledger.Repository,
	bankRepo banks.Repository,
	customerRepo customers.Repository,
	supplierRepo suppliers.Repository,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("cheque repository required")
	}
	if entryRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if bankRepo == nil {
		return nil, fmt.Errorf("bank account repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if supplierRepo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		entries:   entryRepo,
		banks:     bankRepo,
		customers: customerRepo,
		suppliers: supplierRepo,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*models.Cheque, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.CekNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cheque number required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !dates.IsValid(input.EntryDate) || !dates.IsValid(input.MaturityDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid entry or maturity date")
	}
	if !input.Direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cheque direction")
	}
	if input.Direction == enums.ChequeDirectionAlacak && input.SupplierID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receivable cheques cannot link a supplier")
	}
	if input.Direction == enums.ChequeDirectionBorc && input.CustomerID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payable cheques cannot link a customer")
	}

	var created *models.Cheque
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Unknown references degrade to a detached cheque rather than
		// failing the registration.
		customerID := input.CustomerID
		if customerID != nil {
			if _, err := s.customers.WithTx(tx).FindByID(ctx, *customerID); err != nil {
				if !stderrors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				customerID = nil
			}
		}
		supplierID := input.SupplierID
		if supplierID != nil {
			if _, err := s.suppliers.WithTx(tx).FindByID(ctx, *supplierID); err != nil {
				if !stderrors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				supplierID = nil
			}
		}
		bankAccountID := input.BankAccountID
		if bankAccountID != nil {
			if _, err := s.banks.WithTx(tx).FindByID(ctx, *bankAccountID); err != nil {
				if !stderrors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				bankAccountID = nil
			}
		}

		cheque := &models.Cheque{
			CekNo:         input.CekNo,
			Amount:        input.Amount,
			EntryDate:     input.EntryDate,
			MaturityDate:  input.MaturityDate,
			Direction:     input.Direction,
			Status:        InitialStatus(input.Direction),
			CustomerID:    customerID,
			SupplierID:    supplierID,
			BankAccountID: bankAccountID,
			AttachmentID:  input.AttachmentID,
			Description:   input.Description,
			CreatedBy:     actor,
		}
		if err := repo.Create(ctx, cheque); err != nil {
			return err
		}

		action := enums.ChequeMoveActionGiris
		if input.Direction == enums.ChequeDirectionBorc {
			action = enums.ChequeMoveActionKeside
		}
		if err := repo.CreateMove(ctx, &models.ChequeMove{
			ChequeID:    cheque.ID,
			Action:      action,
			Description: input.Description,
			PerformedBy: actor,
		}); err != nil {
			return err
		}

		created = cheque
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	cheque, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "cheque not found")
	}
	moves, err := s.repo.ListMoves(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Cheque: cheque, Moves: moves}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	cheques, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Cheques: cheques}
	today := dates.Format(s.now().UTC())
	dueSoonCutoff, err := dates.AddDays(today, dueSoonWindowDays)
	if err != nil {
		return nil, err
	}
	dueMonthCutoff, err := dates.AddDays(today, dueMonthWindowDays)
	if err != nil {
		return nil, err
	}

	for _, cheque := range cheques {
		if cheque.Status.IsTerminal() {
			continue
		}
		switch cheque.Direction {
		case enums.ChequeDirectionAlacak:
			result.TotalAlacak = result.TotalAlacak.Add(cheque.Amount)
		case enums.ChequeDirectionBorc:
			result.TotalBorc = result.TotalBorc.Add(cheque.Amount)
		}
		if cheque.MaturityDate < today {
			result.OverdueCount++
		} else if cheque.MaturityDate <= dueSoonCutoff {
			result.DueSoonCount++
		} else if cheque.MaturityDate <= dueMonthCutoff {
			result.DueMonthCount++
		}
	}
	return result, nil
}

// ListPayable returns the upcoming payment plan: payable cheques
// maturing today or later, nearest first.
func (s *service) ListPayable(ctx context.Context, bankAccountID *uuid.UUID) ([]models.Cheque, error) {
	return s.repo.ListPayable(ctx, dates.Format(s.now().UTC()), bankAccountID)
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Cheque, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	var updated *models.Cheque
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cheque, err := repo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "cheque not found")
		}

		if input.Amount != nil {
			if isSettled(cheque.Status) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "settled cheques are frozen").
					WithDetails(map[string]string{"status": cheque.Status.String()})
			}
			if !input.Amount.IsPositive() {
				return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
			}
			cheque.Amount = *input.Amount
		}
		if input.CekNo != nil {
			if *input.CekNo == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "cheque number cannot be empty")
			}
			cheque.CekNo = *input.CekNo
		}
		if input.EntryDate != nil {
			if !dates.IsValid(*input.EntryDate) {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid entry date")
			}
			cheque.EntryDate = *input.EntryDate
		}
		if input.MaturityDate != nil {
			if !dates.IsValid(*input.MaturityDate) {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid maturity date")
			}
			cheque.MaturityDate = *input.MaturityDate
		}
		if input.Description != nil {
			cheque.Description = input.Description
		}
		if input.AttachmentID != nil {
			cheque.AttachmentID = input.AttachmentID
		}

		now := s.now().UTC()
		cheque.UpdatedBy = &actor
		cheque.UpdatedAt = &now
		if err := repo.Update(ctx, cheque); err != nil {
			return err
		}
		updated = cheque
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus moves a cheque through the lifecycle table and books
// the matching ledger entry where the transition demands one.
func (s *service) UpdateStatus(ctx context.Context, actor string, id uuid.UUID, input StatusInput) (*models.Cheque, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cheque status")
	}
	isoDate := input.IsoDate
	if isoDate == "" {
		isoDate = dates.Format(s.now().UTC())
	}
	if !dates.IsValid(isoDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid iso date")
	}

	var updated *models.Cheque
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cheque, err := repo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "cheque not found")
		}
		if err := ValidateTransition(cheque.Direction, cheque.Status, input.Status); err != nil {
			return err
		}

		if input.BankAccountID != nil {
			if _, err := s.banks.WithTx(tx).FindByID(ctx, *input.BankAccountID); err != nil {
				return notFoundOr(err, "bank account not found")
			}
			cheque.BankAccountID = input.BankAccountID
		}

		action := enums.ChequeMoveActionDurum
		var entry *models.Transaction

		switch input.Status {
		case enums.ChequeStatusTahsilEdildi:
			entry, err = s.bookCollection(ctx, tx, cheque, isoDate, input.Description, actor)
			if err != nil {
				return err
			}
			action = enums.ChequeMoveActionTahsilat
			now := s.now().UTC()
			cheque.PaidAt = &now
			cheque.PaidBankID = cheque.BankAccountID
			cheque.PaymentTransactionID = &entry.ID

		case enums.ChequeStatusOdendi:
			entry, err = s.bookPayment(ctx, tx, cheque, isoDate, nil, input.Description, actor)
			if err != nil {
				return err
			}
			action = enums.ChequeMoveActionOdeme
			now := s.now().UTC()
			cheque.PaidAt = &now
			cheque.PaidBankID = cheque.BankAccountID
			cheque.PaymentTransactionID = &entry.ID

		case enums.ChequeStatusKarsiliksiz:
			entry, err = s.bookBounce(ctx, tx, cheque, isoDate, input.Description, actor)
			if err != nil {
				return err
			}

		case enums.ChequeStatusOdemede:
			// Endorsing a receivable over to a supplier only records the
			// link; the cash-out booking is the caller's responsibility.
			// An absent or unknown supplier leaves the current link as is.
			if input.SupplierID != nil {
				if _, err := s.suppliers.WithTx(tx).FindByID(ctx, *input.SupplierID); err == nil {
					cheque.SupplierID = input.SupplierID
				}
			}
			action = enums.ChequeMoveActionCiro
		}

		cheque.Status = input.Status
		now := s.now().UTC()
		cheque.UpdatedBy = &actor
		cheque.UpdatedAt = &now
		if err := repo.Update(ctx, cheque); err != nil {
			return err
		}

		move := &models.ChequeMove{
			ChequeID:    cheque.ID,
			Action:      action,
			Description: input.Description,
			PerformedBy: actor,
		}
		if entry != nil {
			move.TransactionID = &entry.ID
		}
		if err := repo.CreateMove(ctx, move); err != nil {
			return err
		}

		updated = cheque
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Pay settles a payable cheque: document numbering, the bank booking
// and the status flip happen in one transaction so a concurrent
// duplicate payment cannot slip through.
func (s *service) Pay(ctx context.Context, actor string, id uuid.UUID, input PayInput) (*models.Cheque, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.BankAccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank account id required")
	}
	isoDate := input.IsoDate
	if isoDate == "" {
		isoDate = dates.Format(s.now().UTC())
	}
	if !dates.IsValid(isoDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid iso date")
	}

	var paid *models.Cheque
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cheque, err := repo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "cheque not found")
		}
		if cheque.Direction != enums.ChequeDirectionBorc {
			return pkgerrors.New(pkgerrors.CodeValidation, "only payable cheques can be paid")
		}
		if cheque.Status == enums.ChequeStatusOdendi {
			return pkgerrors.New(pkgerrors.CodeConflict, "cheque already paid")
		}
		if _, err := s.banks.WithTx(tx).FindByID(ctx, input.BankAccountID); err != nil {
			return notFoundOr(err, "bank account not found")
		}

		entryRepo := s.entries.WithTx(tx)
		prefix, err := ledger.DocumentPrefix(ledger.ChequePaymentPrefix, isoDate)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "building document prefix")
		}
		existing, err := entryRepo.ListDocumentNos(ctx, isoDate, prefix)
		if err != nil {
			return err
		}
		docNo, err := ledger.NextDocumentNo(ledger.ChequePaymentPrefix, isoDate, existing)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "generating document number")
		}

		cheque.BankAccountID = &input.BankAccountID
		entry, err := s.bookPayment(ctx, tx, cheque, isoDate, &docNo, input.Description, actor)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		cheque.Status = enums.ChequeStatusOdendi
		cheque.PaidAt = &now
		cheque.PaidBankID = &input.BankAccountID
		cheque.PaymentTransactionID = &entry.ID
		cheque.UpdatedBy = &actor
		cheque.UpdatedAt = &now
		if err := repo.Update(ctx, cheque); err != nil {
			return err
		}

		if err := repo.CreateMove(ctx, &models.ChequeMove{
			ChequeID:      cheque.ID,
			Action:        enums.ChequeMoveActionOdeme,
			TransactionID: &entry.ID,
			Description:   input.Description,
			PerformedBy:   actor,
		}); err != nil {
			return err
		}

		paid = cheque
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// Delete soft-deletes a cheque. Settled cheques stay on the books so
// reports keep their history.
func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cheque, err := repo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "cheque not found")
		}
		if isSettled(cheque.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "settled cheques cannot be deleted").
				WithDetails(map[string]string{"status": cheque.Status.String()})
		}
		return repo.SoftDelete(ctx, cheque.ID, actor, s.now().UTC())
	})
}

// bookCollection records the ledger entry for a collected receivable:
// into the linked bank when one is set, otherwise into the cash drawer.
func (s *service) bookCollection(ctx context.Context, tx *gorm.DB, cheque *models.Cheque, isoDate string, description *string, actor string) (*models.Transaction, error) {
	entry := &models.Transaction{
		IsoDate:      isoDate,
		Type:         enums.TransactionTypeCekTahsil,
		Direction:    enums.TransactionDirectionGiris,
		Counterparty: s.counterpartyName(ctx, tx, cheque),
		Description:  description,
		ChequeID:     &cheque.ID,
		CustomerID:   cheque.CustomerID,
		CreatedBy:    actor,
	}
	if cheque.BankAccountID != nil {
		entry.Source = enums.TransactionSourceBanka
		entry.BankDelta = cheque.Amount
		amount := cheque.Amount
		entry.DisplayIncoming = &amount
		entry.BankAccountID = cheque.BankAccountID
	} else {
		entry.Source = enums.TransactionSourceKasa
		entry.Incoming = cheque.Amount
	}
	return s.persistEntry(ctx, tx, entry)
}

// bookPayment records the ledger entry for paying out a cheque.
func (s *service) bookPayment(ctx context.Context, tx *gorm.DB, cheque *models.Cheque, isoDate string, docNo *string, description *string, actor string) (*models.Transaction, error) {
	entry := &models.Transaction{
		IsoDate:      isoDate,
		DocumentNo:   docNo,
		Type:         enums.TransactionTypeCekOdeme,
		Direction:    enums.TransactionDirectionCikis,
		Counterparty: s.counterpartyName(ctx, tx, cheque),
		Description:  description,
		ChequeID:     &cheque.ID,
		SupplierID:   cheque.SupplierID,
		CreatedBy:    actor,
	}
	if cheque.BankAccountID != nil {
		entry.Source = enums.TransactionSourceBanka
		entry.BankDelta = cheque.Amount.Neg()
		amount := cheque.Amount
		entry.DisplayOutgoing = &amount
		entry.BankAccountID = cheque.BankAccountID
	} else {
		entry.Source = enums.TransactionSourceKasa
		entry.Outgoing = cheque.Amount
	}
	return s.persistEntry(ctx, tx, entry)
}

// bookBounce records the info-only entry for a bounced cheque. The
// amount lives in a display field; balances never move.
func (s *service) bookBounce(ctx context.Context, tx *gorm.DB, cheque *models.Cheque, isoDate string, description *string, actor string) (*models.Transaction, error) {
	amount := cheque.Amount
	entry := &models.Transaction{
		IsoDate:         isoDate,
		Type:            enums.TransactionTypeCekKarsiliksiz,
		Source:          enums.TransactionSourceCek,
		Direction:       enums.TransactionDirectionCikis,
		Counterparty:    s.counterpartyName(ctx, tx, cheque),
		Description:     description,
		DisplayOutgoing: &amount,
		ChequeID:        &cheque.ID,
		CustomerID:      cheque.CustomerID,
		SupplierID:      cheque.SupplierID,
		CreatedBy:       actor,
	}
	return s.persistEntry(ctx, tx, entry)
}

func (s *service) persistEntry(ctx context.Context, tx *gorm.DB, entry *models.Transaction) (*models.Transaction, error) {
	entryRepo := s.entries.WithTx(tx)
	prior, err := entryRepo.ListCashEntriesThrough(ctx, entry.IsoDate, nil)
	if err != nil {
		return nil, err
	}
	entry.BalanceAfter = ledger.ComputeBalanceAfter(prior, entry.Incoming, entry.Outgoing, entry.Source)
	if err := entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) counterpartyName(ctx context.Context, tx *gorm.DB, cheque *models.Cheque) *string {
	switch cheque.Direction {
	case enums.ChequeDirectionAlacak:
		if cheque.Customer != nil {
			return &cheque.Customer.Name
		}
		if cheque.CustomerID != nil {
			if customer, err := s.customers.WithTx(tx).FindByID(ctx, *cheque.CustomerID); err == nil {
				return &customer.Name
			}
		}
	case enums.ChequeDirectionBorc:
		if cheque.Supplier != nil {
			return &cheque.Supplier.Name
		}
		if cheque.SupplierID != nil {
			if supplier, err := s.suppliers.WithTx(tx).FindByID(ctx, *cheque.SupplierID); err == nil {
				return &supplier.Name
			}
		}
	}
	return nil
}

func isSettled(status enums.ChequeStatus) bool {
	return status == enums.ChequeStatusOdendi || status == enums.ChequeStatusTahsilEdildi
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
