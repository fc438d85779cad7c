package enums

import "fmt"

// TransactionCategory tags an entry for reporting purposes.
type TransactionCategory string

const (
	TransactionCategoryMusteri    TransactionCategory = "MUSTERI"
	TransactionCategoryTedarikci  TransactionCategory = "TEDARIKCI"
	TransactionCategoryMaas       TransactionCategory = "MAAS"
	TransactionCategoryKira       TransactionCategory = "KIRA"
	TransactionCategoryVergi      TransactionCategory = "VERGI"
	TransactionCategoryGenelGider TransactionCategory = "GENEL_GIDER"
	TransactionCategoryDiger      TransactionCategory = "DIGER"
)

var validTransactionCategories = []TransactionCategory{
	TransactionCategoryMusteri,
	TransactionCategoryTedarikci,
	TransactionCategoryMaas,
	TransactionCategoryKira,
	TransactionCategoryVergi,
	TransactionCategoryGenelGider,
	TransactionCategoryDiger,
}

// String implements fmt.Stringer.
func (c TransactionCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known TransactionCategory.
func (c TransactionCategory) IsValid() bool {
	for _, candidate := range validTransactionCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseTransactionCategory converts raw input into a TransactionCategory.
func ParseTransactionCategory(value string) (TransactionCategory, error) {
	for _, candidate := range validTransactionCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction category %q", value)
}
