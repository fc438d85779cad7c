package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/enums"
)

// ChequeMove is one append-only audit row for a cheque. Moves are never
// updated or deleted.
type ChequeMove struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	ChequeID      uuid.UUID              `gorm:"column:cheque_id;type:uuid;not null;index"`
	Action        enums.ChequeMoveAction `gorm:"column:action;not null"`
	TransactionID *uuid.UUID             `gorm:"column:transaction_id;type:uuid"`
	Description   *string                `gorm:"column:description"`
	PerformedBy   string                 `gorm:"column:performed_by;not null"`
	PerformedAt   time.Time              `gorm:"column:performed_at;autoCreateTime"`
}

// BeforeCreate assigns the primary key when the caller left it empty.
func (m *ChequeMove) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
