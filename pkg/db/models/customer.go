package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a counterparty that owes or pays money to the company.
type Customer struct {
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

func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
