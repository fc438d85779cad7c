package banks

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

// Service exposes bank account operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*models.BankAccount, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error)
	List(ctx context.Context) ([]models.BankAccount, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.BankAccount, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

// CreateInput captures a new bank account.
type CreateInput struct {
	Name      string
	AccountNo *string
	IBAN      *string
}

// UpdateInput carries the mutable bank account fields.
type UpdateInput struct {
	Name      *string
	AccountNo *string
	IBAN      *string
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a bank account service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bank account repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*models.BankAccount, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	account := &models.BankAccount{
		Name:      input.Name,
		AccountNo: input.AccountNo,
		IBAN:      input.IBAN,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bank account not found")
		}
		return nil, err
	}
	return account, nil
}

func (s *service) List(ctx context.Context) ([]models.BankAccount, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.BankAccount, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	account, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		account.Name = *input.Name
	}
	if input.AccountNo != nil {
		account.AccountNo = input.AccountNo
	}
	if input.IBAN != nil {
		account.IBAN = input.IBAN
	}
	now := s.now().UTC()
	account.UpdatedBy = &actor
	account.UpdatedAt = &now

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
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
