package common

import "testing"

func TestPrecisionFromString(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"0.00001", 5},
		{"0.001", 3},
		{"0.1", 1},
		{"0.100", 1},
		{"0.0010", 3},
		{"1.0", 0},
		{"1", 0},
		{"10", 0},
		{"1e-8", 8},
		{"0.000000001", 9},
		{"", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := PrecisionFromString(c.in); got != c.want {
			t.Fatalf("PrecisionFromString(%q)=%d, want %d", c.in, got, c.want)
		}
	}
}

func TestDecimalToPrecision(t *testing.T) {
	if got := DecimalToPrecision(0.123456, 4); got != "0.1235" {
		t.Fatalf("DecimalToPrecision=%q, want 0.1235", got)
	}
	if got := DecimalToPrecision(43535.5, 0); got != "43536" {
		t.Fatalf("DecimalToPrecision=%q, want 43536", got)
	}
	// 不产生科学计数法
	if got := DecimalToPrecision(0.00000001, 8); got != "0.00000001" {
		t.Fatalf("DecimalToPrecision=%q, want 0.00000001", got)
	}
}

func TestDecimalTruncate(t *testing.T) {
	if got := DecimalTruncate(0.123456, 4); got != "0.1234" {
		t.Fatalf("DecimalTruncate=%q, want 0.1234", got)
	}
	if got := DecimalTruncate(9.999, 2); got != "9.99" {
		t.Fatalf("DecimalTruncate=%q, want 9.99", got)
	}
}

func TestFloatToString(t *testing.T) {
	if got := FloatToString(0.00000001); got != "0.00000001" {
		t.Fatalf("FloatToString=%q, want 0.00000001", got)
	}
}
