package validate

import "testing"

func TestIsInteger(t *testing.T) {
	cases := map[string]bool{
		"0":     true,
		"12345": true,
		"":      false,
		"12 3":  false,
		" 12":   false,
		"-1":    false,
		"1.5":   false,
		"abc":   false,
	}
	for in, want := range cases {
		if got := IsInteger(in); got != want {
			t.Fatalf("IsInteger(%q): got %v want %v", in, got, want)
		}
	}
	if !IsPositiveInteger("42") || IsPositiveInteger("-42") {
		t.Fatal("IsPositiveInteger should accept 42 and reject -42")
	}
}

func TestIsEmpty(t *testing.T) {
	empty := ""
	full := "x"
	if !IsEmpty(nil) || !IsEmpty(&empty) || IsEmpty(&full) {
		t.Fatal("IsEmpty should treat nil and zero-length as empty")
	}
	if !IsBlank("") || IsBlank(" ") {
		t.Fatal("IsBlank should only accept the zero-length string")
	}
}

func TestIsValidCharacterString(t *testing.T) {
	if IsValidCharacterString("has space", "") {
		t.Fatal("strings with spaces must be rejected")
	}
	if !IsValidCharacterString("pool01", AlphaNum) {
		t.Fatal("alphanumeric value should pass alphaNum filter")
	}
	if IsValidCharacterString("pool_01", AlphaNum) {
		t.Fatal("underscore should fail alphaNum filter")
	}
	if IsValidCharacterString("a/b", "/\\") {
		t.Fatal("blacklisted slash should be rejected")
	}
	if !IsValidCharacterString("a-b", "/\\") {
		t.Fatal("value without blacklisted chars should pass")
	}
}

func TestIsValidIPv4(t *testing.T) {
	cases := map[string]bool{
		"192.168.1.1":     true,
		"0.0.0.0":         true,
		"255.255.255.255": true,
		"192.168.1.999":   false,
		"abc.def.1.1":     false,
		"1.2.3":           false,
		"1.2.3.4.5":       false,
		"1.2. 3.4":        false,
		"1..3.4":          false,
		"":                false,
	}
	for in, want := range cases {
		if got := IsValidIPv4(in); got != want {
			t.Fatalf("IsValidIPv4(%q): got %v want %v", in, got, want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"user@host":        true,
		"user@host.com":    true,
		"user":             true,
		"user@host.":       false,
		"user@.host":       false,
		"us er@host.com":   false,
		"user(x)@host.com": false,
		"user@host,com":    false,
	}
	for in, want := range cases {
		if got := IsValidEmail(in); got != want {
			t.Fatalf("IsValidEmail(%q): got %v want %v", in, got, want)
		}
	}
}

func TestIsValidToken(t *testing.T) {
	if !IsValidToken("VSN001", 6) {
		t.Fatal("six-char VSN should pass with max 6")
	}
	if IsValidToken("VSN0012", 6) {
		t.Fatal("seven-char VSN should fail with max 6")
	}
	if IsValidToken("VS N1", 31) {
		t.Fatal("embedded whitespace must be rejected")
	}
	if !IsValidToken("label-1_a.b", 31) {
		t.Fatal("whitelisted punctuation should pass")
	}
	if IsValidToken("label$", 31) {
		t.Fatal("non-whitelisted punctuation should fail")
	}
}
