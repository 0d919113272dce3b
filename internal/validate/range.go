package validate

import (
	"math/big"
	"strings"
)

type RangeResult int

const (
	InvalidUsage RangeResult = iota
	OutOfRange
	Valid
)

func (r RangeResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case OutOfRange:
		return "out_of_range"
	default:
		return "invalid_usage"
	}
}

// Describe is the default user-facing wording for a result.
func Describe(r RangeResult) string {
	switch r {
	case Valid:
		return "value accepted"
	case OutOfRange:
		return "value is not a number or is outside the allowed range"
	default:
		return "range check was called with an inconsistent set of bounds or units"
	}
}

// Range is one value with optional bounds and units, all unparsed.
type Range struct {
	Value     string `json:"value"`
	ValueUnit string `json:"value_unit,omitempty"`
	Lower     string `json:"lower,omitempty"`
	LowerUnit string `json:"lower_unit,omitempty"`
	Upper     string `json:"upper,omitempty"`
	UpperUnit string `json:"upper_unit,omitempty"`
}

// IsValidNumberInRange checks r.Value against optional bounds. Value and
// bounds use the IsInteger grammar on every path; unit tokens are matched
// case-insensitively.
func IsValidNumberInRange(r Range) RangeResult {
	value, lower, upper := r.Value, r.Lower, r.Upper
	valueUnit := strings.TrimSpace(r.ValueUnit)
	lowerUnit := strings.TrimSpace(r.LowerUnit)
	upperUnit := strings.TrimSpace(r.UpperUnit)

	if value == "" {
		return InvalidUsage
	}
	hasBounds := lower != "" || upper != ""
	if hasBounds && (lower == "" || upper == "") {
		return InvalidUsage
	}
	if (lowerUnit != "" && lower == "") || (upperUnit != "" && upper == "") {
		return InvalidUsage
	}

	unitCount := 0
	for _, u := range []string{valueUnit, lowerUnit, upperUnit} {
		if u != "" {
			unitCount++
		}
	}
	if unitCount != 0 && unitCount != 3 {
		return InvalidUsage
	}

	if !hasBounds {
		if _, ok := parseInteger(value); ok {
			return Valid
		}
		return OutOfRange
	}

	if unitCount == 0 {
		v, okV := parseInteger(value)
		lo, okL := parseInteger(lower)
		hi, okH := parseInteger(upper)
		if !okV || !okL || !okH {
			return OutOfRange
		}
		return compareBounds(v, lo, hi)
	}

	vu, okVU := ParseUnit(valueUnit)
	lu, okLU := ParseUnit(lowerUnit)
	hu, okHU := ParseUnit(upperUnit)
	if !okVU || !okLU || !okHU {
		return InvalidUsage
	}
	if vu.Family() != lu.Family() || vu.Family() != hu.Family() {
		return InvalidUsage
	}

	v, okV := ToBase(value, vu)
	lo, okL := ToBase(lower, lu)
	hi, okH := ToBase(upper, hu)
	if !okV || !okL || !okH {
		return OutOfRange
	}
	return compareBounds(v, lo, hi)
}

func compareBounds(v, lo, hi *big.Int) RangeResult {
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return OutOfRange
	}
	return Valid
}
