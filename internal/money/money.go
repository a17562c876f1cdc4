// Package money holds prices as integer cents so cart totals stay exact to
// two decimal places no matter how many additions and removals occur.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount is a non-negative price in cents.
type Amount int64

const (
	// Zero is the empty amount.
	Zero Amount = 0
	// Max is the largest representable amount. Sums saturate here.
	Max Amount = math.MaxInt64
)

// leadingNumber matches the numeric prefix of a string the way a lenient
// float parser does: "12.5kg" yields 12.5, "abc" yields nothing.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// FromFloat converts a decimal price to cents, rounding half away from zero.
// Negative, NaN, infinite, and out-of-range inputs become Zero.
func FromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return Zero
	}
	cents := math.Round(f * 100)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if cents >= float64(math.MaxInt64) {
		return Zero
	}
	return Amount(cents)
}

// ParseString reads the leading decimal number of s. Missing or non-numeric
// input yields Zero.
func ParseString(s string) Amount {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return Zero
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return Zero
	}
	return FromFloat(f)
}

// Parse converts a loosely typed price (as decoded from JSON or TOML) to an
// Amount. Unknown types yield Zero.
func Parse(v any) Amount {
	switch p := v.(type) {
	case nil:
		return Zero
	case float64:
		return FromFloat(p)
	case float32:
		return FromFloat(float64(p))
	case int:
		return FromFloat(float64(p))
	case int64:
		return FromFloat(float64(p))
	case json.Number:
		return ParseString(p.String())
	case string:
		return ParseString(p)
	default:
		return Zero
	}
}

// Cents returns the amount in cents.
func (a Amount) Cents() int64 { return int64(a) }

// Float returns the amount as a decimal value.
func (a Amount) Float() float64 { return float64(a) / 100 }

// String formats the amount as dollars with two decimals, e.g. "$12.50".
func (a Amount) String() string {
	sign := ""
	c := uint64(a)
	if a < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// Add returns a+b for non-negative amounts, saturating at Max.
func (a Amount) Add(b Amount) Amount {
	if b > 0 && a > Max-b {
		return Max
	}
	return a + b
}

// Sum adds amounts, saturating at Max.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
