package cheques

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, enums.ChequeStatusKasada, InitialStatus(enums.ChequeDirectionAlacak))
	assert.Equal(t, enums.ChequeStatusOdemede, InitialStatus(enums.ChequeDirectionBorc))
}

func TestCanTransition_receivable(t *testing.T) {
	allowed := map[enums.ChequeStatus][]enums.ChequeStatus{
		enums.ChequeStatusKasada: {
			enums.ChequeStatusBankadaTahsilde,
			enums.ChequeStatusTahsilEdildi,
			enums.ChequeStatusOdemede,
		},
		enums.ChequeStatusBankadaTahsilde: {
			enums.ChequeStatusTahsilEdildi,
		},
	}
	assertTransitionTable(t, enums.ChequeDirectionAlacak, allowed)
}

func TestCanTransition_payable(t *testing.T) {
	allowed := map[enums.ChequeStatus][]enums.ChequeStatus{
		enums.ChequeStatusKasada:          {enums.ChequeStatusOdendi},
		enums.ChequeStatusBankadaTahsilde: {enums.ChequeStatusOdendi},
		enums.ChequeStatusOdemede:         {enums.ChequeStatusOdendi},
		enums.ChequeStatusTahsilEdildi:    {enums.ChequeStatusOdendi},
	}
	assertTransitionTable(t, enums.ChequeDirectionBorc, allowed)
}

// assertTransitionTable walks every from/to pair and checks the outcome
// against the expected map. KARSILIKSIZ is reachable from any state
// regardless of direction.
func assertTransitionTable(t *testing.T, direction enums.ChequeDirection, allowed map[enums.ChequeStatus][]enums.ChequeStatus) {
	t.Helper()

	statuses := []enums.ChequeStatus{
		enums.ChequeStatusKasada,
		enums.ChequeStatusBankadaTahsilde,
		enums.ChequeStatusOdemede,
		enums.ChequeStatusTahsilEdildi,
		enums.ChequeStatusOdendi,
		enums.ChequeStatusKarsiliksiz,
		enums.ChequeStatusIptal,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := to == enums.ChequeStatusKarsiliksiz
			for _, target := range allowed[from] {
				if target == to {
					want = true
				}
			}
			got := CanTransition(direction, from, to)
			assert.Equalf(t, want, got, "%s: %s -> %s", direction, from, to)
		}
	}
}

func TestValidateTransition_errorDetails(t *testing.T) {
	err := ValidateTransition(enums.ChequeDirectionAlacak, enums.ChequeStatusKasada, enums.ChequeStatusOdendi)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "ALACAK", details["direction"])
	assert.Equal(t, "KASADA", details["from"])
	assert.Equal(t, "ODENDI", details["to"])
}

func TestValidateTransition_allowed(t *testing.T) {
	require.NoError(t, ValidateTransition(enums.ChequeDirectionAlacak, enums.ChequeStatusKasada, enums.ChequeStatusBankadaTahsilde))
	require.NoError(t, ValidateTransition(enums.ChequeDirectionBorc, enums.ChequeStatusTahsilEdildi, enums.ChequeStatusOdendi))
	require.NoError(t, ValidateTransition(enums.ChequeDirectionBorc, enums.ChequeStatusOdendi, enums.ChequeStatusKarsiliksiz))
}
