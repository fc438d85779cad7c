package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
)

// ComputeBalanceAfter derives the running cash balance snapshot for a
// candidate entry. prior must hold the entries dated on or before the
// candidate's date, in replay order (iso_date, then creation time).
//
// Only KASA entries move the balance. Entries of any other source
// contribute nothing no matter what their amount fields say, and a
// non-KASA candidate simply carries the prior sum forward.
func ComputeBalanceAfter(prior []models.Transaction, incoming, outgoing decimal.Decimal, source enums.TransactionSource) decimal.Decimal {
	running := decimal.Zero
	for _, entry := range prior {
		if entry.Source != enums.TransactionSourceKasa {
			continue
		}
		running = running.Add(entry.Incoming).Sub(entry.Outgoing)
	}
	if source == enums.TransactionSourceKasa {
		running = running.Add(incoming).Sub(outgoing)
	}
	return running
}
