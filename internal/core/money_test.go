package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"12.34", 1234, true},
		{"0.01", 1, true},
		{"12.345", 1235, true}, // half-up on the third decimal
		{" 2.50 ", 250, true},
		{"100", 10000, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("ParseAmount(%q) = %d, %v; want %d", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("ParseAmount(%q) expected error, got %d", tc.in, got)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"0.10", 10},
		{"0.20", 20},
		{"100", 10000},
		{"100.5", 10050},
		{"12.345", 1234}, // truncated, not rounded
		{"-3.25", -325},
		{"+3.25", 325},
		{".5", 50},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"1.2.3", 0},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.in); got != tc.out {
			t.Errorf("MinorUnits(%q) = %d, want %d", tc.in, got, tc.out)
		}
	}
}

// Adding amounts in cents and formatting back must round-trip without
// floating point drift: 0.10 + 0.20 == 0.30 exactly.
func TestMinorUnitsRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"0.10", "0.20"},
		{"0.01", "0.02"},
		{"1234.56", "0.44"},
		{"99999.99", "0.01"},
	}
	for _, p := range pairs {
		sum := MinorUnits(p[0]) + MinorUnits(p[1])
		if got := MinorUnits(FormatCents(sum)); got != sum {
			t.Errorf("round trip of %s + %s: got %d, want %d", p[0], p[1], got, sum)
		}
	}
	if got := FormatCents(MinorUnits("0.10") + MinorUnits("0.20")); got != "0.30" {
		t.Errorf("0.10 + 0.20 = %s, want 0.30", got)
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{100, "1.00"},
		{1234, "12.34"},
		{-1234, "-12.34"},
		{-5, "-0.05"},
		{100000001, "1000000.01"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.out {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
