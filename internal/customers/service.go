package customers

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

// Service exposes customer operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*models.Customer, error)
	BulkSave(ctx context.Context, actor string, items []SaveItem) ([]models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, search string) ([]models.Customer, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Customer, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

// CreateInput captures a new customer.
type CreateInput struct {
	Name  string
	Phone *string
	TaxNo *string
	Note  *string
}

// UpdateInput carries the mutable customer fields.
type UpdateInput struct {
	Name  *string
	Phone *string
	TaxNo *string
	Note  *string
}

// SaveItem is one row of a bulk save. A set ID updates the existing
// customer, a nil ID creates a new one.
type SaveItem struct {
	ID    *uuid.UUID
	Name  string
	Phone *string
	TaxNo *string
	Note  *string
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a customer service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*models.Customer, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	customer := &models.Customer{
		Name:      input.Name,
		Phone:     input.Phone,
		TaxNo:     input.TaxNo,
		Note:      input.Note,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// BulkSave upserts each item independently. Failures are collected per
// item so one bad row does not hide the rest.
func (s *service) BulkSave(ctx context.Context, actor string, items []SaveItem) ([]models.Customer, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	var (
		saved []models.Customer
		errs  []error
	)
	for i, item := range items {
		if item.ID == nil {
			customer, err := s.Create(ctx, actor, CreateInput{
				Name:  item.Name,
				Phone: item.Phone,
				TaxNo: item.TaxNo,
				Note:  item.Note,
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("item %d: %w", i, err))
				continue
			}
			saved = append(saved, *customer)
			continue
		}

		var name *string
		if item.Name != "" {
			name = &item.Name
		}
		customer, err := s.Update(ctx, actor, *item.ID, UpdateInput{
			Name:  name,
			Phone: item.Phone,
			TaxNo: item.TaxNo,
			Note:  item.Note,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		saved = append(saved, *customer)
	}

	if combined := multierr.Combine(errs...); combined != nil {
		return saved, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "saving customers")
	}
	return saved, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, err
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, search string) ([]models.Customer, error) {
	return s.repo.List(ctx, search)
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Customer, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.TaxNo != nil {
		customer.TaxNo = input.TaxNo
	}
	if input.Note != nil {
		customer.Note = input.Note
	}
	now := s.now().UTC()
	customer.UpdatedBy = &actor
	customer.UpdatedAt = &now

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
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
