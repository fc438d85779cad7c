package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputeBalanceAfter_onlyCashMovesTheBalance(t *testing.T) {
	prior := []models.Transaction{
		{Source: enums.TransactionSourceKasa, Incoming: dec("100.00")},
		{Source: enums.TransactionSourceBanka, BankDelta: dec("5000.00")},
		{Source: enums.TransactionSourceKasa, Outgoing: dec("30.00")},
		{Source: enums.TransactionSourceCek},
	}

	got := ComputeBalanceAfter(prior, dec("50.00"), decimal.Zero, enums.TransactionSourceKasa)
	assert.True(t, got.Equal(dec("120.00")), "got %s", got)
}

func TestComputeBalanceAfter_nonCashEntryCarriesPriorForward(t *testing.T) {
	prior := []models.Transaction{
		{Source: enums.TransactionSourceKasa, Incoming: dec("100.00")},
	}

	got := ComputeBalanceAfter(prior, decimal.Zero, decimal.Zero, enums.TransactionSourceBanka)
	assert.True(t, got.Equal(dec("100.00")), "got %s", got)
}

func TestComputeBalanceAfter_canGoNegative(t *testing.T) {
	got := ComputeBalanceAfter(nil, decimal.Zero, dec("75.50"), enums.TransactionSourceKasa)
	assert.True(t, got.Equal(dec("-75.50")), "got %s", got)
}

func TestComputeBalanceAfter_emptyHistory(t *testing.T) {
	got := ComputeBalanceAfter(nil, dec("10.00"), decimal.Zero, enums.TransactionSourceKasa)
	assert.True(t, got.Equal(dec("10.00")), "got %s", got)
}
