package normalize

import "strings"

// Category is the semantic bucket that decides numeric precision.
type Category string

const (
	CategoryIdentifier   Category = "identifier"
	CategoryCount        Category = "count"
	CategoryPercentage   Category = "percentage"
	CategoryCurrency     Category = "currency"
	CategoryCorrelation  Category = "correlation"
	CategoryFreeText     Category = "free-text"
	CategoryUnclassified Category = "unclassified"
)

// DefaultCorrelationMarker flags a file as a correlation matrix when it
// appears anywhere in the file name.
const DefaultCorrelationMarker = "correlation"

var (
	countTerms      = []string{"count", "rows", "columns", "sku_count", "transaction_count"}
	percentageTerms = []string{"pct", "percentage", "margin", "cv"}
	currencyTerms   = []string{"revenue", "price", "sales", "cost"}
)

// Classifier maps normalized column names of one file to categories.
// Build it once per file; Correlation must not be re-derived per cell.
type Classifier struct {
	// Correlation marks the whole file as a correlation matrix.
	Correlation bool
	// Identifier is the name of the identifier column injected for this
	// file, if any.
	Identifier string
}

type rule struct {
	category Category
	match    func(c Classifier, name string) bool
}

// rules are evaluated in order; the first match wins. Count requires an
// exact tail match (discount_pct_count is a count); percentage and
// currency match substrings.
var rules = []rule{
	{CategoryIdentifier, func(c Classifier, name string) bool {
		return c.Identifier != "" && name == c.Identifier
	}},
	{CategoryCorrelation, func(c Classifier, _ string) bool { return c.Correlation }},
	{CategoryCount, func(_ Classifier, name string) bool { return hasSuffixAny(name, countTerms) }},
	{CategoryPercentage, func(_ Classifier, name string) bool { return containsAny(name, percentageTerms) }},
	{CategoryCurrency, func(_ Classifier, name string) bool { return containsAny(name, currencyTerms) }},
}

// NewClassifier builds the classifier for a file. The correlation flag is
// computed from the file name using marker.
func NewClassifier(filename, marker, identifier string) Classifier {
	return Classifier{
		Correlation: IsCorrelationFile(filename, marker),
		Identifier:  identifier,
	}
}

// Classify returns the category of a normalized column name.
func (c Classifier) Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, r := range rules {
		if r.match(c, lower) {
			return r.category
		}
	}
	return CategoryUnclassified
}

// ClassifyColumn is Classify for a column known to hold numeric cells;
// columns without any number are free text.
func (c Classifier) ClassifyColumn(name string, numeric bool) Category {
	if !numeric && name != c.Identifier {
		return CategoryFreeText
	}
	return c.Classify(name)
}

// IsCorrelationFile reports whether filename follows the correlation
// matrix naming convention. An empty marker uses DefaultCorrelationMarker.
func IsCorrelationFile(filename, marker string) bool {
	if marker == "" {
		marker = DefaultCorrelationMarker
	}
	return strings.Contains(strings.ToLower(filename), strings.ToLower(marker))
}

func hasSuffixAny(name string, terms []string) bool {
	for _, t := range terms {
		if name == t || strings.HasSuffix(name, t) {
			return true
		}
	}
	return false
}

func containsAny(name string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(name, t) {
			return true
		}
	}
	return false
}
