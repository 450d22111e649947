package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"3.5", "3.50"},
		{"150", "150.00"},
		{"1234.5", "1,234.50"},
		{"999999.99", "999,999.99"},
		{"1000000", "1,000,000.00"},
		{"-1234.5", "-1,234.50"},
		{"-3", "-3.00"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatAmount(d); got != tc.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
	if got := FormatDate(d); got != "2026-08-29" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0%"},
		{0.5, "50.0%"},
		{0.333, "33.3%"},
		{1, "100.0%"},
	}
	for _, tc := range cases {
		if got := FormatPercent(tc.in); got != tc.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tc := range cases {
		if got := FormatAge(tc.in); got != tc.want {
			t.Errorf("%s: FormatAge = %q, want %q", tc.name, got, tc.want)
		}
	}
}
