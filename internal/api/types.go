package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"outlay/internal/model"

	"github.com/shopspring/decimal"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Message string `json:"message"`
}

// flexString tolerates IDs encoded as either a JSON string or a number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// expenseWire mirrors the backend's loose expense encoding. Amount may
// arrive as a number or a string, date as RFC 3339 or a bare date.
type expenseWire struct {
	ID       flexString      `json:"id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

// DecodeError reports a remote record that failed schema coercion.
// Malformed records fail loudly instead of decaying into zero values.
type DecodeError struct {
	ID    string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decoding expense %q field %s: %v", e.ID, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// toModel coerces a wire record into canonical typed form.
func (w expenseWire) toModel() (model.Expense, error) {
	date, err := parseDate(w.Date)
	if err != nil {
		return model.Expense{}, &DecodeError{ID: string(w.ID), Field: "date", Err: err}
	}
	return model.Expense{
		ID:       string(w.ID),
		Title:    w.Title,
		Amount:   w.Amount,
		Category: model.NormalizeCategory(w.Category),
		Date:     date,
	}, nil
}

// draftWire is the outgoing create/update payload.
type draftWire struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

func draftToWire(d model.Draft) draftWire {
	return draftWire{
		Title:    d.Title,
		Amount:   d.Amount,
		Category: string(d.Category),
		Date:     d.Date.Format(time.RFC3339),
	}
}
