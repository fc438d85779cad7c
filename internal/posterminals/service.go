package posterminals

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

// Service exposes POS terminal operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*models.PosTerminal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PosTerminal, error)
	List(ctx context.Context, activeOnly bool) ([]models.PosTerminal, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.PosTerminal, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

// CreateInput captures a new terminal.
type CreateInput struct {
	Name          string
	BankAccountID *uuid.UUID
	DefaultRate   *decimal.Decimal
}

// UpdateInput carries the mutable terminal fields.
type UpdateInput struct {
	Name        *string
	DefaultRate *decimal.Decimal
	Active      *bool
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a POS terminal service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pos terminal repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*models.PosTerminal, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.DefaultRate != nil && input.DefaultRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "default rate cannot be negative")
	}

	terminal := &models.PosTerminal{
		Name:          input.Name,
		BankAccountID: input.BankAccountID,
		DefaultRate:   input.DefaultRate,
		Active:        true,
		CreatedBy:     actor,
	}
	if err := s.repo.Create(ctx, terminal); err != nil {
		return nil, err
	}
	return terminal, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.PosTerminal, error) {
	terminal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pos terminal not found")
		}
		return nil, err
	}
	return terminal, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]models.PosTerminal, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.PosTerminal, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	terminal, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		terminal.Name = *input.Name
	}
	if input.DefaultRate != nil {
		if input.DefaultRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "default rate cannot be negative")
		}
		terminal.DefaultRate = input.DefaultRate
	}
	if input.Active != nil {
		terminal.Active = *input.Active
	}
	now := s.now().UTC()
	terminal.UpdatedBy = &actor
	terminal.UpdatedAt = &now

	if err := s.repo.Update(ctx, terminal); err != nil {
		return nil, err
	}
	return terminal, nil
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
