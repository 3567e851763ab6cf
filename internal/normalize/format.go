package normalize

import (
	"errors"
	"fmt"
	"math"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

// ErrUnsupportedValue is returned for cells the formatter cannot handle.
var ErrUnsupportedValue = errors.New("unsupported value")

const (
	correlationPlaces = 3
	moneyPlaces       = 2
)

// Format applies the precision rule of category c to a single cell.
// Missing cells become empty text under every category and text passes
// through untouched.
func Format(v table.Value, c Category) (table.Value, error) {
	switch v.Kind {
	case table.KindMissing:
		return table.Text(""), nil
	case table.KindText:
		return v, nil
	case table.KindInteger:
		return formatInteger(v, c), nil
	case table.KindReal:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return v, fmt.Errorf("%w: non-finite number %v", ErrUnsupportedValue, v.Float)
		}
		if c == CategoryCount && math.Abs(v.Float) >= math.MaxInt64 {
			return v, fmt.Errorf("%w: %v overflows an integer count", ErrUnsupportedValue, v.Float)
		}
		return formatReal(v, c), nil
	default:
		return v, fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Kind)
	}
}

func formatInteger(v table.Value, c Category) table.Value {
	if c == CategoryCorrelation {
		// correlation coefficients stay real even when whole
		return table.Rounded(float64(v.Int), correlationPlaces)
	}
	return v
}

func formatReal(v table.Value, c Category) table.Value {
	switch c {
	case CategoryCorrelation:
		return table.Rounded(Round(v.Float, correlationPlaces), correlationPlaces)
	case CategoryCount:
		return table.Int(int64(math.Trunc(v.Float)))
	case CategoryPercentage, CategoryCurrency:
		return table.Rounded(Round(v.Float, moneyPlaces), moneyPlaces)
	default:
		return v
	}
}

// Round rounds x to places fractional digits, halves away from zero.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(x*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return x
	}
	return r
}
