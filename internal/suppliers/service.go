package suppliers

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

// Service exposes supplier operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*models.Supplier, error)
	BulkSave(ctx context.Context, actor string, items []SaveItem) ([]models.Supplier, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	List(ctx context.Context, search string) ([]models.Supplier, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Supplier, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

// CreateInput captures a new supplier.
type CreateInput struct {
	Name  string
	Phone *string
	TaxNo *string
	Note  *string
}

// UpdateInput carries the mutable supplier fields.
type UpdateInput struct {
	Name  *string
	Phone *string
	TaxNo *string
	Note  *string
}

// SaveItem is one row of a bulk save. A set ID updates the existing
// supplier, a nil ID creates a new one.
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

// NewService wires a supplier service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*models.Supplier, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	supplier := &models.Supplier{
		Name:      input.Name,
		Phone:     input.Phone,
		TaxNo:     input.TaxNo,
		Note:      input.Note,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// BulkSave upserts each item independently. Failures are collected per
// item so one bad row does not hide the rest.
func (s *service) BulkSave(ctx context.Context, actor string, items []SaveItem) ([]models.Supplier, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	var (
		saved []models.Supplier
		errs  []error
	)
	for i, item := range items {
		if item.ID == nil {
			supplier, err := s.Create(ctx, actor, CreateInput{
				Name:  item.Name,
				Phone: item.Phone,
				TaxNo: item.TaxNo,
				Note:  item.Note,
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("item %d: %w", i, err))
				continue
			}
			saved = append(saved, *supplier)
			continue
		}

		var name *string
		if item.Name != "" {
			name = &item.Name
		}
		supplier, err := s.Update(ctx, actor, *item.ID, UpdateInput{
			Name:  name,
			Phone: item.Phone,
			TaxNo: item.TaxNo,
			Note:  item.Note,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		saved = append(saved, *supplier)
	}

	if combined := multierr.Combine(errs...); combined != nil {
		return saved, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "saving suppliers")
	}
	return saved, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, err
	}
	return supplier, nil
}

func (s *service) List(ctx context.Context, search string) ([]models.Supplier, error) {
	return s.repo.List(ctx, search)
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.Supplier, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	supplier, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		supplier.Name = *input.Name
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.TaxNo != nil {
		supplier.TaxNo = input.TaxNo
	}
	if input.Note != nil {
		supplier.Note = input.Note
	}
	now := s.now().UTC()
	supplier.UpdatedBy = &actor
	supplier.UpdatedAt = &now

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
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
