package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card is a company credit card. CurrentRisk tracks the outstanding
// balance accumulated by expenses and reduced by payments; it never
// drops below zero.
type Card struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	BankAccountID *uuid.UUID `gorm:"column:bank_account_id;type:uuid"`
	MaskedNo      *string    `gorm:"column:masked_no"`

	CardLimit   decimal.Decimal `gorm:"column:card_limit;type:numeric(14,2);not null;default:0"`
	CurrentRisk decimal.Decimal `gorm:"column:current_risk;type:numeric(14,2);not null;default:0"`

	// CutoffDay and DueDay are calendar days of month (1..31); days past
	// a month's length clamp to its last day when resolving statements.
	CutoffDay int `gorm:"column:cutoff_day;not null"`
	DueDay    int `gorm:"column:due_day;not null"`

	Active bool `gorm:"column:active;not null;default:true"`

	BankAccount *BankAccount `gorm:"foreignKey:BankAccountID"`

	CreatedBy string     `gorm:"column:created_by;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedBy *string    `gorm:"column:updated_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
	DeletedBy *string    `gorm:"column:deleted_by"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

func (c *Card) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
