package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+7 (999) 123-45-67", "79991234567"},
		{"89991234567", "79991234567"},
		{"79991234567@c.us", "79991234567"},
		{"8 (999) 123-45-67", "79991234567"},
		{"+1 415 555 0100", "14155550100"},
		{"8123", "8123"}, // short numbers keep their leading 8
		{"", ""},
		{"@c.us", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
