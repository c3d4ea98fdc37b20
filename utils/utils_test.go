package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Morning Run", "morning-run"},
		{"  30 min / intro call!  ", "30-min-intro-call"},
		{"Wein & Käse", "wein-k-se"},
		{"---", "activity"},
		{"", "activity"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(22)
	if len(s) != 22 {
		t.Fatalf("length %d, want 22", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in %q", r, s)
		}
	}
}
