package enums

import "fmt"

// TransactionDirection marks an entry as an inflow or outflow.
type TransactionDirection string

const (
	TransactionDirectionGiris TransactionDirection = "GIRIS"
	TransactionDirectionCikis TransactionDirection = "CIKIS"
)

var validTransactionDirections = []TransactionDirection{
	TransactionDirectionGiris,
	TransactionDirectionCikis,
}

// String implements fmt.Stringer.
func (d TransactionDirection) String() string {
	return string(d)
}

// IsValid reports whether the value is a known TransactionDirection.
func (d TransactionDirection) IsValid() bool {
	for _, candidate := range validTransactionDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseTransactionDirection converts raw input into a TransactionDirection.
func ParseTransactionDirection(value string) (TransactionDirection, error) {
	for _, candidate := range validTransactionDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction direction %q", value)
}
