package users

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
	"github.com/escafood/kasadefteri-backend/pkg/security"
)

const tempPasswordLength = 12

// Service manages operator accounts.
type Service interface {
	Create(ctx context.Context, actor string, input CreateInput) (*CreateResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.User, error)
	ResetPassword(ctx context.Context, actor string, id uuid.UUID) (string, error)
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// CreateInput registers a new account.
type CreateInput struct {
	Username    string
	DisplayName string
	Role        enums.UserRole
}

// CreateResult couples the stored account with its one-time password.
type CreateResult struct {
	User         *models.User
	TempPassword string
}

// UpdateInput carries the mutable account fields.
type UpdateInput struct {
	DisplayName *string
	Role        *enums.UserRole
	Active      *bool
}

type service struct {
	repo     Repository
	password config.PasswordConfig
	now      func() time.Time
}

// NewService wires the user service.
func NewService(repo Repository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, password: password, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, actor string, input CreateInput) (*CreateResult, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.Username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
	}
	hash, err := security.HashPassword(tempPassword, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}
	user := &models.User{
		Username:     input.Username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}
	return &CreateResult{User: user, TempPassword: tempPassword}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return user, nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return user, nil
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, actor string, id uuid.UUID, input UpdateInput) (*models.User, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name cannot be empty")
		}
		user.DisplayName = *input.DisplayName
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	now := s.now().UTC()
	user.UpdatedAt = &now

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user")
	}
	return user, nil
}

// ResetPassword issues a fresh one-time password for the account.
func (s *service) ResetPassword(ctx context.Context, actor string, id uuid.UUID) (string, error) {
	if actor == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
	}
	hash, err := security.HashPassword(tempPassword, s.password)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user.PasswordHash = hash
	now := s.now().UTC()
	user.UpdatedAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user")
	}
	return tempPassword, nil
}

func (s *service) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.Active {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}
	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}

func notFoundOr(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
}
