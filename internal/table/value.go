package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindInteger
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single cell. The zero Value is Missing.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64

	// Precision is the number of fractional digits a Real was rounded to,
	// or -1 when it has not been rounded.
	Precision int
}

// Missing returns an empty cell.
func Missing() Value { return Value{Kind: KindMissing} }

// Text returns a string cell.
func Text(s string) Value { return Value{Kind: KindText, Str: s} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Real returns a real cell that has not been rounded.
func Real(f float64) Value { return Value{Kind: KindReal, Float: f, Precision: -1} }

// Rounded returns a real cell already rounded to places fractional digits.
func Rounded(f float64, places int) Value {
	return Value{Kind: KindReal, Float: f, Precision: places}
}

// IsMissing reports whether v holds no data.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// IsNumeric reports whether v is an Integer or a Real.
func (v Value) IsNumeric() bool { return v.Kind == KindInteger || v.Kind == KindReal }

// String renders the cell the way it is written to disk. Unrounded reals
// use two fractional digits.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Str
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		prec := v.Precision
		if prec < 0 {
			prec = 2
		}
		return strconv.FormatFloat(v.Float, 'f', prec, 64)
	default:
		return ""
	}
}

// Equal compares kind and payload. Precision is ignored.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Str == o.Str
	case KindInteger:
		return v.Int == o.Int
	case KindReal:
		return v.Float == o.Float || (math.IsNaN(v.Float) && math.IsNaN(o.Float))
	default:
		return true
	}
}

// FromAny converts a decoded config literal (YAML/JSON scalar) into a Value.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Missing()
	case Value:
		return t
	case string:
		return Text(t)
	case bool:
		if t {
			return Int(1)
		}
		return Int(0)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Int(int64(t))
	case uint64:
		return Int(int64(t))
	case float32:
		return Real(float64(t))
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return Int(int64(t))
		}
		return Real(t)
	default:
		return Text(fmt.Sprint(t))
	}
}

// ParseInt reports whether s is a plain base-10 integer.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseReal reports whether s is a finite decimal or scientific number.
// "nan" and "inf" spellings are rejected.
func ParseReal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
