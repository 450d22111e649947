package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
	}{
		{"Groceries", CategoryGroceries},
		{"Transport", CategoryTransport},
		{"Entertainment", CategoryEntertainment},
		{"Housing", CategoryHousing},
		{"Health", CategoryHealth},
		{"Other", CategoryOther},
		{"", CategoryOther},
		{"groceries", CategoryOther},
		{"Food", CategoryOther},
	}

	for _, tc := range cases {
		if got := NormalizeCategory(tc.raw); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	valid := Draft{
		Title:    "Coffee",
		Amount:   decimal.NewFromInt(3),
		Category: CategoryGroceries,
		Date:     time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	cases := []struct {
		name      string
		mutate    func(d Draft) Draft
		wantField string
	}{
		{"empty title", func(d Draft) Draft { d.Title = ""; return d }, "title"},
		{"zero amount", func(d Draft) Draft { d.Amount = decimal.Zero; return d }, "amount"},
		{"negative amount", func(d Draft) Draft { d.Amount = decimal.NewFromInt(-5); return d }, "amount"},
		{"zero date", func(d Draft) Draft { d.Date = time.Time{}; return d }, "date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mutate(valid).Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}
