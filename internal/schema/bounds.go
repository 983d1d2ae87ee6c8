package schema

import "github.com/shopspring/decimal"

// Bounds is the inclusive value range of a numeric subtype.
type Bounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

var (
	// DECIMAL allows at most 65 digits.
	decimalMax = decimal.New(1, 65).Sub(decimal.New(1, 0))

	integerBounds = map[string]Bounds{
		"tinyint":            signed("-128", "127"),
		"tinyint unsigned":   unsigned("255"),
		"smallint":           signed("-32768", "32767"),
		"smallint unsigned":  unsigned("65535"),
		"mediumint":          signed("-8388608", "8388607"),
		"mediumint unsigned": unsigned("16777215"),
		"int":                signed("-2147483648", "2147483647"),
		"int unsigned":       unsigned("4294967295"),
		"bigint":             signed("-9223372036854775808", "9223372036854775807"),
		"bigint unsigned":    unsigned("18446744073709551615"),
	}

	numberBounds = map[string]Bounds{
		"float":            signed("-3.402823466E+38", "3.402823466E+38"),
		"float unsigned":   unsigned("3.402823466E+38"),
		"double":           signed("-1.7976931348623157E+308", "1.7976931348623157E+308"),
		"double unsigned":  unsigned("1.7976931348623157E+308"),
		"decimal":          {Min: decimalMax.Neg(), Max: decimalMax},
		"decimal unsigned": {Min: decimal.Zero, Max: decimalMax},
	}
)

func signed(lo, hi string) Bounds {
	return Bounds{Min: decimal.RequireFromString(lo), Max: decimal.RequireFromString(hi)}
}

func unsigned(hi string) Bounds {
	return Bounds{Min: decimal.Zero, Max: decimal.RequireFromString(hi)}
}

// IntegerBounds returns the value range for an IntegerWithRange label.
func IntegerBounds(label string) (Bounds, bool) {
	b, ok := integerBounds[label]
	return b, ok
}

// NumberBounds returns the value range for a NumberWithRange label.
func NumberBounds(label string) (Bounds, bool) {
	b, ok := numberBounds[label]
	return b, ok
}
