package cheques

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
)

// ListFilter narrows cheque listings. Zero values mean "no filter".
type ListFilter struct {
	Direction    enums.ChequeDirection
	Status       enums.ChequeStatus
	MaturityFrom string
	MaturityTo   string
	CustomerID   *uuid.UUID
	SupplierID   *uuid.UUID
	Search       string
}

// Repository manages cheque persistence and the per-cheque audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cheque *models.Cheque) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cheque, error)
	List(ctx context.Context, filter ListFilter) ([]models.Cheque, error)
	ListPayable(ctx context.Context, fromDate string, bankAccountID *uuid.UUID) ([]models.Cheque, error)
	Update(ctx context.Context, cheque *models.Cheque) error
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error
	CreateMove(ctx context.Context, move *models.ChequeMove) error
	ListMoves(ctx context.Context, chequeID uuid.UUID) ([]models.ChequeMove, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a cheque repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, cheque *models.Cheque) error {
	return r.db.WithContext(ctx).Omit("Customer", "Supplier", "BankAccount").Create(cheque).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Cheque, error) {
	var cheque models.Cheque
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Supplier").
		Preload("BankAccount").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&cheque).Error; err != nil {
		return nil, err
	}
	return &cheque, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Cheque, error) {
	query := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Supplier").
		Preload("BankAccount").
		Where("deleted_at IS NULL")

	if filter.Direction != "" {
		query = query.Where("direction = ?", filter.Direction)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MaturityFrom != "" {
		query = query.Where("maturity_date >= ?", filter.MaturityFrom)
	}
	if filter.MaturityTo != "" {
		query = query.Where("maturity_date <= ?", filter.MaturityTo)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("cek_no LIKE ? OR description LIKE ?", like, like)
	}

	var cheques []models.Cheque
	if err := query.
		Order("maturity_date ASC").
		Order("created_at ASC").
		Find(&cheques).Error; err != nil {
		return nil, err
	}
	return cheques, nil
}

// ListPayable returns BORC cheques still awaiting payment whose
// maturity is on or after fromDate, nearest maturity first.
func (r *repository) ListPayable(ctx context.Context, fromDate string, bankAccountID *uuid.UUID) ([]models.Cheque, error) {
	query := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("deleted_at IS NULL").
		Where("direction = ?", enums.ChequeDirectionBorc).
		Where("status NOT IN ?", []enums.ChequeStatus{
			enums.ChequeStatusOdendi,
			enums.ChequeStatusKarsiliksiz,
			enums.ChequeStatusIptal,
		}).
		Where("maturity_date >= ?", fromDate)
	if bankAccountID != nil {
		query = query.Where("bank_account_id = ?", *bankAccountID)
	}

	var cheques []models.Cheque
	if err := query.Order("maturity_date ASC, created_at ASC").Find(&cheques).Error; err != nil {
		return nil, err
	}
	return cheques, nil
}

func (r *repository) Update(ctx context.Context, cheque *models.Cheque) error {
	return r.db.WithContext(ctx).Omit("Customer", "Supplier", "BankAccount").Save(cheque).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Cheque{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_by": deletedBy,
			"deleted_at": deletedAt,
		}).Error
}

func (r *repository) CreateMove(ctx context.Context, move *models.ChequeMove) error {
	return r.db.WithContext(ctx).Create(move).Error
}

func (r *repository) ListMoves(ctx context.Context, chequeID uuid.UUID) ([]models.ChequeMove, error) {
	var moves []models.ChequeMove
	if err := r.db.WithContext(ctx).
		Where("cheque_id = ?", chequeID).
		Order("performed_at ASC").
		Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}
