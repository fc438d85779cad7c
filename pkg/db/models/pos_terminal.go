package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PosTerminal is a card terminal tied to a bank account. DefaultRate is
// the commission fraction suggested when recording a collection.
type PosTerminal struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	BankAccountID *uuid.UUID `gorm:"column:bank_account_id;type:uuid"`

	DefaultRate *decimal.Decimal `gorm:"column:default_rate;type:numeric(7,4)"`
	Active      bool             `gorm:"column:active;not null;default:true"`

	BankAccount *BankAccount `gorm:"foreignKey:BankAccountID"`

	CreatedBy string     `gorm:"column:created_by;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedBy *string    `gorm:"column:updated_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
	DeletedBy *string    `gorm:"column:deleted_by"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

func (p *PosTerminal) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
