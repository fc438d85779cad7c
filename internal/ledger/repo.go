package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
)

// ListFilter narrows ledger listings. Zero values mean "no filter".
type ListFilter struct {
	FromDate      string
	ToDate        string
	Source        enums.TransactionSource
	Type          enums.TransactionType
	BankAccountID *uuid.UUID
	CardID        *uuid.UUID
	CustomerID    *uuid.UUID
	SupplierID    *uuid.UUID
	ChequeID      *uuid.UUID
}

// Repository manages persistence for ledger entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, filter ListFilter) ([]models.Transaction, error)
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]models.Transaction, error)
	ListCashEntriesThrough(ctx context.Context, asOfDate string, excludeID *uuid.UUID) ([]models.Transaction, error)
	ListDocumentNos(ctx context.Context, isoDate string, prefix string) ([]string, error)
	ReplaceTags(ctx context.Context, entry *models.Transaction, tags []models.Tag) error
	ClearTags(ctx context.Context, entry *models.Transaction) error
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.Transaction) error {
	return r.db.WithContext(ctx).Omit("Tags").Create(entry).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var entry models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).
		Preload("Tags").
		Where("deleted_at IS NULL")

	if filter.FromDate != "" {
		query = query.Where("iso_date >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		query = query.Where("iso_date <= ?", filter.ToDate)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.BankAccountID != nil {
		query = query.Where("bank_account_id = ?", *filter.BankAccountID)
	}
	if filter.CardID != nil {
		query = query.Where("card_id = ?", *filter.CardID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.ChequeID != nil {
		query = query.Where("cheque_id = ?", *filter.ChequeID)
	}

	var entries []models.Transaction
	if err := query.
		Order("iso_date ASC").
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByCard returns the card's entries in statement order.
func (r *repository) ListByCard(ctx context.Context, cardID uuid.UUID) ([]models.Transaction, error) {
	return r.List(ctx, ListFilter{CardID: &cardID})
}

// ListCashEntriesThrough returns the non-deleted KASA entries dated on or
// before asOfDate, in replay order. Same-day ties break on creation time.
func (r *repository) ListCashEntriesThrough(ctx context.Context, asOfDate string, excludeID *uuid.UUID) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Where("source = ?", enums.TransactionSourceKasa).
		Where("iso_date <= ?", asOfDate)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var entries []models.Transaction
	if err := query.
		Order("iso_date ASC").
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListDocumentNos returns the document numbers already issued for the
// given day that share the prefix.
func (r *repository) ListDocumentNos(ctx context.Context, isoDate string, prefix string) ([]string, error) {
	var docNos []string
	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("deleted_at IS NULL").
		Where("iso_date = ?", isoDate).
		Where("document_no LIKE ?", prefix+"%").
		Pluck("document_no", &docNos).Error; err != nil {
		return nil, err
	}
	return docNos, nil
}

func (r *repository) ReplaceTags(ctx context.Context, entry *models.Transaction, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(entry).Association("Tags").Replace(tags)
}

func (r *repository) ClearTags(ctx context.Context, entry *models.Transaction) error {
	return r.db.WithContext(ctx).Model(entry).Association("Tags").Clear()
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string, deletedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_by": deletedBy,
			"deleted_at": deletedAt,
		}).Error
}
