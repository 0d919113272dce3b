// Package validate holds the field-level checks run before a console form is
// submitted. Every function is total: bad input yields false or a
// RangeResult sentinel, never a panic or error.
package validate

import (
	"strconv"
	"strings"
	"unicode"
)

// AlphaNum is the filter token accepted by IsValidCharacterString to mean
// "ASCII letters and digits only".
const AlphaNum = "alphaNum"

const (
	emailBlacklist = "!#$%^&*()+=[]{}|\\;:'\",<>/?`~"
	tokenWhitelist = "-_.:+@#"
)

func IsEmpty(s *string) bool {
	return s == nil || len(*s) == 0
}

func IsBlank(s string) bool {
	return len(s) == 0
}

func IsInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func IsPositiveInteger(s string) bool {
	if !IsInteger(s) {
		return false
	}
	n, ok := parseInteger(s)
	return ok && n.Sign() >= 0
}

func IsValidCharacterString(s, filter string) bool {
	if strings.Contains(s, " ") {
		return false
	}
	if filter == AlphaNum {
		for i := 0; i < len(s); i++ {
			if !isASCIIAlphaNum(s[i]) {
				return false
			}
		}
		return true
	}
	return filter == "" || !strings.ContainsAny(s, filter)
}

func IsValidIPv4(s string) bool {
	if s == "" || hasSpace(s) {
		return false
	}
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}
	for _, o := range octets {
		if !IsInteger(o) || len(o) > 3 {
			return false
		}
		n, err := strconv.Atoi(o)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// IsValidEmail applies the console's loose address check. A value without
// an '@' passes: bare user names have always been accepted by the
// notification forms.
func IsValidEmail(s string) bool {
	if hasSpace(s) || strings.ContainsAny(s, emailBlacklist) {
		return false
	}
	at := strings.Index(s, "@")
	if at < 0 {
		return true
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	if dot < 0 {
		return true
	}
	return dot > 0 && dot < len(domain)-1
}

// IsValidToken checks VSN names, labels and similar identifiers. Emptiness
// is not checked here; pair it with IsBlank when the field is required.
func IsValidToken(s string, maxLen int) bool {
	if len(s) > maxLen || hasSpace(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isASCIIAlphaNum(c) || strings.IndexByte(tokenWhitelist, c) >= 0 {
			continue
		}
		return false
	}
	return true
}

func isASCIIAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
