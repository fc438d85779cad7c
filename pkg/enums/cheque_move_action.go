package enums

import "fmt"

// ChequeMoveAction labels an entry in a cheque's audit trail.
type ChequeMoveAction string

const (
	ChequeMoveActionGiris    ChequeMoveAction = "GIRIS"    // cheque received into the safe
	ChequeMoveActionCiro     ChequeMoveAction = "CIRO"     // endorsed over to a supplier
	ChequeMoveActionKeside   ChequeMoveAction = "KESIDE"   // company cheque issued
	ChequeMoveActionTahsilat ChequeMoveAction = "TAHSILAT" // collected
	ChequeMoveActionOdeme    ChequeMoveAction = "ODEME"    // paid
	ChequeMoveActionDurum    ChequeMoveAction = "DURUM"    // plain status change
)

var validChequeMoveActions = []ChequeMoveAction{
	ChequeMoveActionGiris,
	ChequeMoveActionCiro,
	ChequeMoveActionKeside,
	ChequeMoveActionTahsilat,
	ChequeMoveActionOdeme,
	ChequeMoveActionDurum,
}

// String implements fmt.Stringer.
func (a ChequeMoveAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ChequeMoveAction.
func (a ChequeMoveAction) IsValid() bool {
	for _, candidate := range validChequeMoveActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseChequeMoveAction converts raw input into a ChequeMoveAction.
func ParseChequeMoveAction(value string) (ChequeMoveAction, error) {
	for _, candidate := range validChequeMoveActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cheque move action %q", value)
}
