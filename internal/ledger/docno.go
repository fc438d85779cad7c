package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/escafood/kasadefteri-backend/pkg/dates"
)

// ChequePaymentPrefix marks transactions created by the payable-cheque
// fast path.
const ChequePaymentPrefix = "BNK-CKS"

// DocumentPrefix renders the day-scoped portion of a document number,
// e.g. "BNK-CKS-05/03-".
func DocumentPrefix(prefix string, isoDate string) (string, error) {
	parsed, err := dates.Parse(isoDate)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%02d/%02d-", prefix, parsed.Day(), int(parsed.Month())), nil
}

// NextDocumentNo produces the next sequential document number for the
// given day. existing holds the document numbers already issued that day
// for the same prefix; the sequence continues from the highest suffix.
func NextDocumentNo(prefix string, isoDate string, existing []string) (string, error) {
	dayPrefix, err := DocumentPrefix(prefix, isoDate)
	if err != nil {
		return "", err
	}

	maxSeq := 0
	for _, docNo := range existing {
		if !strings.HasPrefix(docNo, dayPrefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(docNo, dayPrefix))
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s%04d", dayPrefix, maxSeq+1), nil
}
