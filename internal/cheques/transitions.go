package cheques

import (
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

type transitionKey struct {
	direction enums.ChequeDirection
	from      enums.ChequeStatus
}

// allowedTransitions is the full lifecycle table. KARSILIKSIZ is handled
// separately: a cheque can bounce from any state regardless of
// direction.
var allowedTransitions = map[transitionKey][]enums.ChequeStatus{
	{enums.ChequeDirectionAlacak, enums.ChequeStatusKasada}: {
		enums.ChequeStatusBankadaTahsilde,
		enums.ChequeStatusTahsilEdildi,
		enums.ChequeStatusOdemede,
	},
	{enums.ChequeDirectionAlacak, enums.ChequeStatusBankadaTahsilde}: {
		enums.ChequeStatusTahsilEdildi,
	},
	{enums.ChequeDirectionBorc, enums.ChequeStatusKasada}: {
		enums.ChequeStatusOdendi,
	},
	{enums.ChequeDirectionBorc, enums.ChequeStatusBankadaTahsilde}: {
		enums.ChequeStatusOdendi,
	},
	{enums.ChequeDirectionBorc, enums.ChequeStatusOdemede}: {
		enums.ChequeStatusOdendi,
	},
	{enums.ChequeDirectionBorc, enums.ChequeStatusTahsilEdildi}: {
		enums.ChequeStatusOdendi,
	},
}

// InitialStatus derives the status a freshly registered cheque starts
// in: receivables sit in the safe, payables are earmarked for payment.
func InitialStatus(direction enums.ChequeDirection) enums.ChequeStatus {
	if direction == enums.ChequeDirectionBorc {
		return enums.ChequeStatusOdemede
	}
	return enums.ChequeStatusKasada
}

// CanTransition reports whether the lifecycle table allows moving a
// cheque of the given direction from one status to another.
func CanTransition(direction enums.ChequeDirection, from, to enums.ChequeStatus) bool {
	if to == enums.ChequeStatusKarsiliksiz {
		return true
	}
	for _, allowed := range allowedTransitions[transitionKey{direction, from}] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a validation error naming the rejected
// move when the table disallows it.
func ValidateTransition(direction enums.ChequeDirection, from, to enums.ChequeStatus) error {
	if CanTransition(direction, from, to) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "cheque status transition not allowed").
		WithDetails(map[string]string{
			"direction": direction.String(),
			"from":      from.String(),
			"to":        to.String(),
		})
}
