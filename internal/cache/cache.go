// Package cache provides a SQLite-backed snapshot of the expense
// collection, so a failed fetch can still show the last-known records
// across process restarts.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"outlay/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Snapshot stores the most recently fetched expense collection.
type Snapshot struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant snapshot database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "outlay", "expenses.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "outlay", "expenses.db")
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Snapshot, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Snapshot{db: db}, nil
}

// Close closes the snapshot database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the given collection, preserving
// its order.
func (s *Snapshot) Save(expenses []model.Expense) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM expenses"); err != nil {
		return err
	}

	for i, e := range expenses {
		_, err := tx.Exec(
			"INSERT INTO expenses (position, id, title, amount, category, date) VALUES (?, ?, ?, ?, ?, ?)",
			i, e.ID, e.Title, e.Amount.String(), string(e.Category), e.Date.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}

	savedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO snapshot_meta (key, value) VALUES ('saved_at', ?)", savedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Load reads the stored snapshot in its saved order.
func (s *Snapshot) Load() ([]model.Expense, error) {
	rows, err := s.db.Query("SELECT id, title, amount, category, date FROM expenses ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var amountStr, categoryStr, dateStr string
		if err := rows.Scan(&e.ID, &e.Title, &amountStr, &categoryStr, &dateStr); err != nil {
			return nil, err
		}

		e.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("cache: parsing amount for %q: %w", e.ID, err)
		}
		e.Date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("cache: parsing date for %q: %w", e.ID, err)
		}
		e.Category = model.NormalizeCategory(categoryStr)

		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SavedAt returns when the snapshot was last written, or the zero time if
// no snapshot exists.
func (s *Snapshot) SavedAt() (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM snapshot_meta WHERE key = 'saved_at'").Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}
