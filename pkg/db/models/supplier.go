package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a counterparty the company purchases from and pays.
type Supplier struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name  string    `gorm:"column:name;not null"`
	Phone *string   `gorm:"column:phone"`
	TaxNo *string   `gorm:"column:tax_no"`
	Note  *string   `gorm:"column:note"`

	CreatedBy string     `gorm:"column:created_by;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedBy *string    `gorm:"column:updated_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
	DeletedBy *string    `gorm:"column:deleted_by"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

func (s *Supplier) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
