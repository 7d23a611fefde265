package currency

import "testing"

func TestCentsToMajor(t *testing.T) {
	cases := []struct {
		cents int64
		want  float64
	}{
		{0, 0},
		{100, 1},
		{666, 6.66},
		{123456, 1234.56},
		{15795, 157.95},
	}
	for _, tc := range cases {
		if got := CentsToMajor(tc.cents); got != tc.want {
			t.Errorf("CentsToMajor(%d) = %v, want %v", tc.cents, got, tc.want)
		}
	}
}

func TestMajorToCents(t *testing.T) {
	cases := []struct {
		major float64
		want  int64
	}{
		{0, 0},
		{1, 100},
		{19.99, 1999},
		{1234.56, 123456},
		{0.1, 10},
	}
	for _, tc := range cases {
		if got := MajorToCents(tc.major); got != tc.want {
			t.Errorf("MajorToCents(%v) = %d, want %d", tc.major, got, tc.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{100, "$1.00"},
		{666, "$6.66"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.cents); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
