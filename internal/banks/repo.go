package banks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
)

// Repository manages bank account persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, account *models.BankAccount) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error)
	List(ctx context.Context) ([]models.BankAccount, error)
	Update(ctx context.Context, account *models.BankAccount) error
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a bank account repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) List(ctx context.Context) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repository) Update(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.BankAccount{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_by": deletedBy,
			"deleted_at": deletedAt,
		}).Error
}
