package cards

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
)

// Repository manages credit card persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Card, error)
	List(ctx context.Context, activeOnly bool) ([]models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	UpdateRisk(ctx context.Context, id uuid.UUID, risk decimal.Decimal) error
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a card repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]models.Card, error) {
	query := r.db.WithContext(ctx).Where("deleted_at IS NULL")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var cards []models.Card
	if err := query.Order("name ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *repository) Update(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *repository) UpdateRisk(ctx context.Context, id uuid.UUID, risk decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ?", id).
		Update("current_risk", risk).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_by": deletedBy,
			"deleted_at": deletedAt,
		}).Error
}
