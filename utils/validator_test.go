package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"author@example.org", "first.last+tag@sub.domain.co"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false", email)
		}
	}

	invalid := []string{"", "plainaddress", "@no-local.org", "user@nodot"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Error("password under 8 characters accepted")
	}
	if ok, msg := ValidatePassword("longenough"); !ok {
		t.Errorf("valid password rejected: %s", msg)
	}
}

func TestValidateKeywords(t *testing.T) {
	cases := []struct {
		name     string
		keywords []string
		want     bool
	}{
		{"too few", []string{"one", "two"}, false},
		{"minimum", []string{"one", "two", "three"}, true},
		{"maximum", []string{"a", "b", "c", "d", "e", "f"}, true},
		{"too many", []string{"a", "b", "c", "d", "e", "f", "g"}, false},
		{"blanks ignored", []string{"one", "two", " ", ""}, false},
		{"blanks plus enough", []string{"one", "two", "three", " "}, true},
	}

	for _, tc := range cases {
		if ok, _ := ValidateKeywords(tc.keywords); ok != tc.want {
			t.Errorf("%s: ValidateKeywords(%v) = %v, want %v", tc.name, tc.keywords, ok, tc.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  padded  "); got != "padded" {
		t.Errorf("SanitizeInput trim = %q", got)
	}
	if got := SanitizeInput("null\x00byte"); got != "nullbyte" {
		t.Errorf("SanitizeInput null byte = %q", got)
	}
}
