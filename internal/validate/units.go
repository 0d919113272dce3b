package validate

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
)

type Family int

const (
	FamilyNone Family = iota
	FamilyTime
	FamilySize
)

func (f Family) String() string {
	switch f {
	case FamilyTime:
		return "time"
	case FamilySize:
		return "size"
	default:
		return "none"
	}
}

// Unit is a lower-case unit token as it appears in console forms.
type Unit string

const (
	UnitSecond Unit = "sec"
	UnitMinute Unit = "min"
	UnitHour   Unit = "hr"
	UnitDay    Unit = "day"
	UnitWeek   Unit = "wk"

	UnitByte     Unit = "b"
	UnitKilobyte Unit = "kb"
	UnitMegabyte Unit = "mb"
	UnitGigabyte Unit = "gb"
	UnitTerabyte Unit = "tb"
	UnitPetabyte Unit = "pb"
)

type unitInfo struct {
	family Family
	factor *big.Int
}

var units = map[Unit]unitInfo{
	UnitSecond: {FamilyTime, big.NewInt(1)},
	UnitMinute: {FamilyTime, big.NewInt(60)},
	UnitHour:   {FamilyTime, big.NewInt(3600)},
	UnitDay:    {FamilyTime, big.NewInt(86400)},
	UnitWeek:   {FamilyTime, big.NewInt(604800)},

	UnitByte:     {FamilySize, big.NewInt(1)},
	UnitKilobyte: {FamilySize, pow1024(1)},
	UnitMegabyte: {FamilySize, pow1024(2)},
	UnitGigabyte: {FamilySize, pow1024(3)},
	UnitTerabyte: {FamilySize, pow1024(4)},
	UnitPetabyte: {FamilySize, pow1024(5)},
}

func pow1024(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(1024), big.NewInt(n), nil)
}

// ParseUnit accepts a unit token case-insensitively, ignoring surrounding
// whitespace.
func ParseUnit(s string) (Unit, bool) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := units[u]; !ok {
		return "", false
	}
	return u, true
}

func (u Unit) Family() Family {
	info, ok := units[u]
	if !ok {
		return FamilyNone
	}
	return info.family
}

// Factor is the number of base units (seconds or bytes) in one u.
func (u Unit) Factor() *big.Int {
	info, ok := units[u]
	if !ok {
		return nil
	}
	return new(big.Int).Set(info.factor)
}

// ToBase converts an integer string expressed in unit into seconds or bytes.
func ToBase(value string, unit Unit) (*big.Int, bool) {
	n, ok := parseInteger(value)
	if !ok {
		return nil, false
	}
	factor := unit.Factor()
	if factor == nil {
		return nil, false
	}
	return n.Mul(n, factor), true
}

// FormatSize renders a size value with IEC units, e.g. "1.0 GiB".
func FormatSize(value string, unit Unit) string {
	if unit.Family() != FamilySize {
		return strings.TrimSpace(value) + " " + string(unit)
	}
	n, ok := ToBase(value, unit)
	if !ok {
		return strings.TrimSpace(value) + " " + string(unit)
	}
	if !n.IsUint64() {
		return n.String() + " B"
	}
	return humanize.IBytes(n.Uint64())
}

// parseInteger uses the IsInteger grammar: ASCII digits only, no sign and
// no surrounding whitespace.
func parseInteger(s string) (*big.Int, bool) {
	if !IsInteger(s) {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
