package enums

import "fmt"

// TransactionType identifies the bookkeeping operation a ledger entry records.
type TransactionType string

const (
	TransactionTypeNakitGiris     TransactionType = "NAKIT_GIRIS"
	TransactionTypeNakitCikis     TransactionType = "NAKIT_CIKIS"
	TransactionTypeBankaGiris     TransactionType = "BANKA_GIRIS"
	TransactionTypeBankaCikis     TransactionType = "BANKA_CIKIS"
	TransactionTypePosTahsilat    TransactionType = "POS_TAHSILAT"
	TransactionTypePosKomisyon    TransactionType = "POS_KOMISYON"
	TransactionTypeKartMasraf     TransactionType = "KART_MASRAF"
	TransactionTypeKartOdeme      TransactionType = "KART_ODEME"
	TransactionTypeCekTahsil      TransactionType = "CEK_TAHSIL"
	TransactionTypeCekOdeme       TransactionType = "CEK_ODEME"
	TransactionTypeCekKarsiliksiz TransactionType = "CEK_KARSILIKSIZ"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeNakitGiris,
	TransactionTypeNakitCikis,
	TransactionTypeBankaGiris,
	TransactionTypeBankaCikis,
	TransactionTypePosTahsilat,
	TransactionTypePosKomisyon,
	TransactionTypeKartMasraf,
	TransactionTypeKartOdeme,
	TransactionTypeCekTahsil,
	TransactionTypeCekOdeme,
	TransactionTypeCekKarsiliksiz,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
