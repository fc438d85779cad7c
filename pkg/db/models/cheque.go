package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/enums"
)

// Cheque is a tracked negotiable instrument. Direction is fixed at
// creation: ALACAK cheques link a customer, BORC cheques a supplier,
// never both. Once paid or collected, amount and direction are frozen
// and the row is never soft-deleted so reports keep their history.
type Cheque struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CekNo        string                `gorm:"column:cek_no;not null;index"`
	Amount       decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null"`
	EntryDate    string                `gorm:"column:entry_date;type:varchar(10);not null"`
	MaturityDate string                `gorm:"column:maturity_date;type:varchar(10);not null;index"`
	Direction    enums.ChequeDirection `gorm:"column:direction;not null"`
	Status       enums.ChequeStatus    `gorm:"column:status;not null"`

	CustomerID    *uuid.UUID `gorm:"column:customer_id;type:uuid"`
	SupplierID    *uuid.UUID `gorm:"column:supplier_id;type:uuid"`
	BankAccountID *uuid.UUID `gorm:"column:bank_account_id;type:uuid"`
	AttachmentID  *uuid.UUID `gorm:"column:attachment_id;type:uuid"`

	Description *string `gorm:"column:description"`

	PaidAt               *time.Time `gorm:"column:paid_at"`
	PaidBankID           *uuid.UUID `gorm:"column:paid_bank_id;type:uuid"`
	PaymentTransactionID *uuid.UUID `gorm:"column:payment_transaction_id;type:uuid"`

	Customer    *Customer    `gorm:"foreignKey:CustomerID"`
	Supplier    *Supplier    `gorm:"foreignKey:SupplierID"`
	BankAccount *BankAccount `gorm:"foreignKey:BankAccountID"`

	CreatedBy string     `gorm:"column:created_by;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedBy *string    `gorm:"column:updated_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
	DeletedBy *string    `gorm:"column:deleted_by"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

// BeforeCreate assigns the primary key when the caller left it empty.
func (c *Cheque) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
