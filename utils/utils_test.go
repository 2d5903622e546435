package utils

import "testing"

func TestValidPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"  9876543210  ", true},
		{"1234567", true},
		{"123456", false},
		{"1234567890123456", false},
		{"98-76-54", false},
		{"abc1234567", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidPhone(c.in); got != c.want {
			t.Errorf("ValidPhone(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"doc@clinic.example", true},
		{"a.b+c@mail.co", true},
		{"no-at-sign", false},
		{"two@@ats.example", false},
		{"spaces in@local.example", false},
		{"missing@tld", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidEmail(c.in); got != c.want {
			t.Errorf("ValidEmail(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(16)
	if len(s) != 16 {
		t.Fatalf("len = %d; want 16", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit rune %q in %q", r, s)
		}
	}
}

func TestGenerateRandomStringLength(t *testing.T) {
	if got := len(GenerateRandomString(10)); got != 10 {
		t.Fatalf("len = %d; want 10", got)
	}
}
