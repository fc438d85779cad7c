package cards

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/dates"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

type cardEntryLister interface {
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]models.Transaction, error)
}

// Service exposes credit card operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*models.Card, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Card, error)
	List(ctx context.Context, activeOnly bool) ([]models.Card, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Card, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
	StatementSummary(ctx context.Context, id uuid.UUID, referenceIso string) (*StatementSummary, error)
}

// CreateInput captures a new card.
type CreateInput struct {
	Name          string
	BankAccountID *uuid.UUID
	MaskedNo      *string
	CardLimit     decimal.Decimal
	CutoffDay     int
	DueDay        int
}

// UpdateInput carries the mutable card fields.
type UpdateInput struct {
	Name      *string
	MaskedNo  *string
	CardLimit *decimal.Decimal
	CutoffDay *int
	DueDay    *int
	Active    *bool
}

// StatementSummary reports where a card stands in its current cycle.
type StatementSummary struct {
	Card           *models.Card
	ClosingDate    string
	DueDate        string
	StatementDebt  decimal.Decimal
	UpcomingSpend  decimal.Decimal
	CurrentRisk    decimal.Decimal
	AvailableLimit decimal.Decimal
}

type service struct {
	repo    Repository
	entries cardEntryLister
	now     func() time.Time
}

// NewService wires a card service. entries supplies the card's ledger
// rows for statement math.
func NewService(repo Repository, entries cardEntryLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("card repository required")
	}
	if entries == nil {
		return nil, fmt.Errorf("card entry lister required")
	}
	return &service{repo: repo, entries: entries, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*models.Card, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.CutoffDay < 1 || input.CutoffDay > 31 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cutoff day out of range")
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "due day out of range")
	}
	if input.CardLimit.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card limit cannot be negative")
	}

	card := &models.Card{
		Name:          input.Name,
		BankAccountID: input.BankAccountID,
		MaskedNo:      input.MaskedNo,
		CardLimit:     input.CardLimit,
		CurrentRisk:   decimal.Zero,
		CutoffDay:     input.CutoffDay,
		DueDay:        input.DueDay,
		Active:        true,
		CreatedBy:     actor,
	}
	if err := s.repo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
		}
		return nil, err
	}
	return card, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]models.Card, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Card, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	card, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		card.Name = *input.Name
	}
	if input.MaskedNo != nil {
		card.MaskedNo = input.MaskedNo
	}
	if input.CardLimit != nil {
		if input.CardLimit.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "card limit cannot be negative")
		}
		card.CardLimit = *input.CardLimit
	}
	if input.CutoffDay != nil {
		if *input.CutoffDay < 1 || *input.CutoffDay > 31 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cutoff day out of range")
		}
		card.CutoffDay = *input.CutoffDay
	}
	if input.DueDay != nil {
		if *input.DueDay < 1 || *input.DueDay > 31 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "due day out of range")
		}
		card.DueDay = *input.DueDay
	}
	if input.Active != nil {
		card.Active = *input.Active
	}
	now := s.now().UTC()
	card.UpdatedBy = &actor
	card.UpdatedAt = &now

	if err := s.repo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id, actor, s.now().UTC())
}

// StatementSummary splits the card's expense rows around the current
// statement closing date and reports the cycle totals.
func (s *service) StatementSummary(ctx context.Context, id uuid.UUID, referenceIso string) (*StatementSummary, error) {
	if referenceIso == "" {
		referenceIso = dates.Format(s.now().UTC())
	}
	if !dates.IsValid(referenceIso) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid reference date")
	}

	card, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	closing, err := StatementClosingDate(card.CutoffDay, card.DueDay, referenceIso)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "resolving statement closing date")
	}
	due, err := NextDueDate(card.DueDay, referenceIso)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "resolving due date")
	}

	entries, err := s.entries.ListByCard(ctx, card.ID)
	if err != nil {
		return nil, err
	}

	summary := &StatementSummary{
		Card:           card,
		ClosingDate:    closing,
		DueDate:        due,
		CurrentRisk:    card.CurrentRisk,
		AvailableLimit: card.CardLimit.Sub(card.CurrentRisk),
	}
	for _, entry := range entries {
		if entry.Type != enums.TransactionTypeKartMasraf || entry.DeletedAt != nil {
			continue
		}
		amount := entry.Outgoing
		if entry.DisplayOutgoing != nil {
			amount = *entry.DisplayOutgoing
		}
		if entry.IsoDate <= closing {
			summary.StatementDebt = summary.StatementDebt.Add(amount)
		} else {
			summary.UpcomingSpend = summary.UpcomingSpend.Add(amount)
		}
	}
	return summary, nil
}
