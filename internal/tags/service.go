package tags

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

// Service exposes tag operations.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*models.Tag, error)
	EnsureAll(ctx context.Context, actor string, names []string) ([]models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

// CreateInput captures a new tag.
type CreateInput struct {
	Name  string
	Color *string
}

type service struct {
	repo Repository
}

// NewService wires a tag service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tag repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*models.Tag, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	tag := &models.Tag{
		Name:      input.Name,
		Color:     input.Color,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "tag name already exists")
		}
		return nil, err
	}
	return tag, nil
}

// EnsureAll resolves each name to an existing tag or creates it.
// Failures are collected per name so one bad entry does not hide the
// rest.
func (s *service) EnsureAll(ctx context.Context, actor string, names []string) ([]models.Tag, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	var (
		resolved []models.Tag
		errs     []error
	)
	for _, name := range names {
		if name == "" {
			errs = append(errs, fmt.Errorf("empty tag name"))
			continue
		}
		existing, err := s.repo.FindByName(ctx, name)
		if err == nil {
			resolved = append(resolved, *existing)
			continue
		}
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			errs = append(errs, fmt.Errorf("lookup tag %q: %w", name, err))
			continue
		}
		tag := &models.Tag{Name: name, CreatedBy: actor}
		if err := s.repo.Create(ctx, tag); err != nil {
			errs = append(errs, fmt.Errorf("create tag %q: %w", name, err))
			continue
		}
		resolved = append(resolved, *tag)
	}

	if combined := multierr.Combine(errs...); combined != nil {
		return resolved, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "resolving tags")
	}
	return resolved, nil
}

func (s *service) List(ctx context.Context) ([]models.Tag, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
