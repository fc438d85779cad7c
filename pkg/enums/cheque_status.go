package enums

import "fmt"

// ChequeStatus tracks where a cheque sits in its lifecycle.
type ChequeStatus string

const (
	ChequeStatusKasada          ChequeStatus = "KASADA"
	ChequeStatusBankadaTahsilde ChequeStatus = "BANKADA_TAHSILDE"
	ChequeStatusOdemede         ChequeStatus = "ODEMEDE"
	ChequeStatusTahsilEdildi    ChequeStatus = "TAHSIL_EDILDI"
	ChequeStatusOdendi          ChequeStatus = "ODENDI"
	ChequeStatusKarsiliksiz     ChequeStatus = "KARSILIKSIZ"
	ChequeStatusIptal           ChequeStatus = "IPTAL"
)

var validChequeStatuses = []ChequeStatus{
	ChequeStatusKasada,
	ChequeStatusBankadaTahsilde,
	ChequeStatusOdemede,
	ChequeStatusTahsilEdildi,
	ChequeStatusOdendi,
	ChequeStatusKarsiliksiz,
	ChequeStatusIptal,
}

// Legacy spellings still present in old exports normalize to the
// canonical statuses.
var legacyChequeStatuses = map[string]ChequeStatus{
	"TAHSIL_OLDU":   ChequeStatusTahsilEdildi,
	"ODEME_YAPILDI": ChequeStatusOdendi,
}

// String implements fmt.Stringer.
func (s ChequeStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a canonical ChequeStatus.
func (s ChequeStatus) IsValid() bool {
	for _, candidate := range validChequeStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the cheque has settled: collected, paid or
// bounced.
func (s ChequeStatus) IsTerminal() bool {
	switch s {
	case ChequeStatusTahsilEdildi, ChequeStatusOdendi, ChequeStatusKarsiliksiz, ChequeStatusIptal:
		return true
	}
	return false
}

// ParseChequeStatus converts raw input (including legacy spellings)
// into a canonical ChequeStatus.
func ParseChequeStatus(value string) (ChequeStatus, error) {
	for _, candidate := range validChequeStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	if mapped, ok := legacyChequeStatuses[value]; ok {
		return mapped, nil
	}
	return "", fmt.Errorf("invalid cheque status %q", value)
}
