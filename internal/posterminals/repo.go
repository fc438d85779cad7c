package posterminals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
)

// Repository manages POS terminal persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, terminal *models.PosTerminal) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PosTerminal, error)
	List(ctx context.Context, activeOnly bool) ([]models.PosTerminal, error)
	Update(ctx context.Context, terminal *models.PosTerminal) error
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a POS terminal repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, terminal *models.PosTerminal) error {
	return r.db.WithContext(ctx).Create(terminal).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PosTerminal, error) {
	var terminal models.PosTerminal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&terminal).Error; err != nil {
		return nil, err
	}
	return &terminal, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]models.PosTerminal, error) {
	query := r.db.WithContext(ctx).Where("deleted_at IS NULL")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var terminals []models.PosTerminal
	if err := query.Order("name ASC").Find(&terminals).Error; err != nil {
		return nil, err
	}
	return terminals, nil
}

func (r *repository) Update(ctx context.Context, terminal *models.PosTerminal) error {
	return r.db.WithContext(ctx).Save(terminal).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.PosTerminal{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_by": deletedBy,
			"deleted_at": deletedAt,
		}).Error
}
