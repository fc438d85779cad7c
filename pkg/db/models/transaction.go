package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/enums"
)

// Transaction is one immutable ledger entry. Amount fields are never
// updated in place; corrections go through delete-and-recreate.
//
// BalanceAfter snapshots the running cash balance immediately after
// this entry. Only KASA-source entries contribute to it; BANKA and CEK
// entries carry the prior value forward.
type Transaction struct {
	ID         uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	IsoDate    string                     `gorm:"column:iso_date;type:varchar(10);not null;index"`
	DocumentNo *string                    `gorm:"column:document_no"`
	Type       enums.TransactionType      `gorm:"column:type;not null"`
	Source     enums.TransactionSource    `gorm:"column:source;not null"`
	Direction  enums.TransactionDirection `gorm:"column:direction;not null"`
	Category   *enums.TransactionCategory `gorm:"column:category"`

	Counterparty *string `gorm:"column:counterparty"`
	Description  *string `gorm:"column:description"`

	Incoming     decimal.Decimal `gorm:"column:incoming;type:numeric(14,2);not null"`
	Outgoing     decimal.Decimal `gorm:"column:outgoing;type:numeric(14,2);not null"`
	BankDelta    decimal.Decimal `gorm:"column:bank_delta;type:numeric(14,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:numeric(14,2);not null"`

	// Display overrides shown in the ledger UI; never affect balances.
	DisplayIncoming *decimal.Decimal `gorm:"column:display_incoming;type:numeric(14,2)"`
	DisplayOutgoing *decimal.Decimal `gorm:"column:display_outgoing;type:numeric(14,2)"`

	PosBrut          *decimal.Decimal `gorm:"column:pos_brut;type:numeric(14,2)"`
	PosKomisyon      *decimal.Decimal `gorm:"column:pos_komisyon;type:numeric(14,2)"`
	PosNet           *decimal.Decimal `gorm:"column:pos_net;type:numeric(14,2)"`
	PosEffectiveRate *decimal.Decimal `gorm:"column:pos_effective_rate;type:numeric(8,4)"`

	BankAccountID *uuid.UUID `gorm:"column:bank_account_id;type:uuid"`
	CardID        *uuid.UUID `gorm:"column:card_id;type:uuid"`
	CustomerID    *uuid.UUID `gorm:"column:customer_id;type:uuid"`
	SupplierID    *uuid.UUID `gorm:"column:supplier_id;type:uuid"`
	ChequeID      *uuid.UUID `gorm:"column:cheque_id;type:uuid"`

	Tags []Tag `gorm:"many2many:transaction_tags;joinForeignKey:TransactionID;joinReferences:TagID"`

	CreatedBy string     `gorm:"column:created_by;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	DeletedBy *string    `gorm:"column:deleted_by"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

// BeforeCreate assigns the primary key when the caller left it empty.
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
