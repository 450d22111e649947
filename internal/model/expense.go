// Package model defines domain types for outlay expense records.
package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryGroceries     Category = "Groceries"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHousing       Category = "Housing"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryGroceries,
	CategoryTransport,
	CategoryEntertainment,
	CategoryHousing,
	CategoryHealth,
	CategoryOther,
}

// NormalizeCategory maps a raw category name to a known Category.
// Empty or unknown names collapse to CategoryOther.
func NormalizeCategory(raw string) Category {
	for _, c := range Categories {
		if string(c) == raw {
			return c
		}
	}
	return CategoryOther
}

// Expense is one expense record in canonical typed form. Amount and Date
// are always typed after any remote read, never raw strings.
type Expense struct {
	ID       string
	Title    string
	Amount   decimal.Decimal
	Category Category
	Date     time.Time
}

// Draft is the client-side payload for creating or editing an expense.
// The ID is always assigned remotely, so a draft never carries one.
type Draft struct {
	Title    string
	Amount   decimal.Decimal
	Category Category
	Date     time.Time
}

// ValidationError reports a draft rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the draft against the client-side submission rules.
func (d Draft) Validate() error {
	if d.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !d.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if d.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	return nil
}
