package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankAccount is a company bank account referenced by transactions,
// cards, POS terminals and cheques.
type BankAccount struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	AccountNo *string   `gorm:"column:account_no"`
	IBAN      *string   `gorm:"column:iban"`

	CreatedBy string     `gorm:"column:created_by;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedBy *string    `gorm:"column:updated_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
	DeletedBy *string    `gorm:"column:deleted_by"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

// BeforeCreate assigns the primary key when the caller left it empty.
func (b *BankAccount) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
