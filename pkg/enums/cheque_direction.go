package enums

import "fmt"

// ChequeDirection distinguishes cheques we will collect from cheques we
// must pay. ALACAK cheques come from customers, BORC cheques go to
// suppliers. The direction never changes after creation.
type ChequeDirection string

const (
	ChequeDirectionAlacak ChequeDirection = "ALACAK"
	ChequeDirectionBorc   ChequeDirection = "BORC"
)

var validChequeDirections = []ChequeDirection{
	ChequeDirectionAlacak,
	ChequeDirectionBorc,
}

// String implements fmt.Stringer.
func (d ChequeDirection) String() string {
	return string(d)
}

// IsValid reports whether the value is a known ChequeDirection.
func (d ChequeDirection) IsValid() bool {
	for _, candidate := range validChequeDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseChequeDirection converts raw input into a ChequeDirection.
func ParseChequeDirection(value string) (ChequeDirection, error) {
	for _, candidate := range validChequeDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cheque direction %q", value)
}
