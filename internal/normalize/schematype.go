package normalize

import "strings"

// Suggested storage types for schema documentation.
const (
	TypeInteger    = "INTEGER"
	TypePercentage = "FLOAT (percentage)"
	TypeCurrency   = "FLOAT (currency)"
	TypeDate       = "DATE/STRING"
	TypeString     = "STRING"
	TypeFallback   = "STRING/FLOAT"
)

// typeBuckets is advisory and intentionally broader than the formatting
// rules in classify.go; the two tables are kept separate.
var typeBuckets = []struct {
	terms []string
	label string
}{
	{[]string{"id", "flag", "count", "units", "rows"}, TypeInteger},
	{[]string{"pct", "percentage", "margin", "cv"}, TypePercentage},
	{[]string{"revenue", "price", "sales", "cost"}, TypeCurrency},
	{[]string{"date", "month", "week", "year"}, TypeDate},
	{[]string{"name", "class", "category", "brand"}, TypeString},
}

// SuggestType returns the storage type label for a normalized column name.
func SuggestType(name string) string {
	lower := strings.ToLower(name)
	for _, b := range typeBuckets {
		if containsAny(lower, b.terms) {
			return b.label
		}
	}
	return TypeFallback
}
