package money

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		paise int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{300, "3.00"},
		{1_700, "17.00"},
		{123_456, "1234.56"},
		{-300, "-3.00"},
		{-5, "-0.05"},
	}
	for _, tc := range cases {
		if got := Format(tc.paise); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.paise, got, tc.want)
		}
	}
}

func TestFromFloatRounds(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{20, 2_000},
		{20.5, 2_050},
		{0.1, 10},
		{19.999, 2_000},
		{0.005, 1},
	}
	for _, tc := range cases {
		if got := FromFloat(tc.amount); got != tc.want {
			t.Errorf("FromFloat(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
