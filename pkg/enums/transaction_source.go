package enums

import "fmt"

// TransactionSource names the money pool a ledger entry draws on. Only
// KASA entries move the running cash balance; CEK entries are
// informational only.
type TransactionSource string

const (
	TransactionSourceKasa  TransactionSource = "KASA"
	TransactionSourceBanka TransactionSource = "BANKA"
	TransactionSourceCek   TransactionSource = "CEK"
)

var validTransactionSources = []TransactionSource{
	TransactionSourceKasa,
	TransactionSourceBanka,
	TransactionSourceCek,
}

// String implements fmt.Stringer.
func (s TransactionSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TransactionSource.
func (s TransactionSource) IsValid() bool {
	for _, candidate := range validTransactionSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTransactionSource converts raw input into a TransactionSource.
func ParseTransactionSource(value string) (TransactionSource, error) {
	for _, candidate := range validTransactionSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction source %q", value)
}
