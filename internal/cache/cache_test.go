package cache

import (
	"path/filepath"
	"testing"
	"time"

	"outlay/internal/model"

	"github.com/shopspring/decimal"
)

func openTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = snap.Close() })
	return snap
}

func sample() []model.Expense {
	amt1, _ := decimal.NewFromString("3.50")
	amt2, _ := decimal.NewFromString("912.00")
	return []model.Expense{
		{
			ID: "a1", Title: "Coffee", Amount: amt1,
			Category: model.CategoryGroceries,
			Date:     time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID: "b2", Title: "Rent", Amount: amt2,
			Category: model.CategoryHousing,
			Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	snap := openTestSnapshot(t)

	in := sample()
	if err := snap.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := snap.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Title != in[i].Title {
			t.Errorf("record %d = %+v, want %+v", i, out[i], in[i])
		}
		if !out[i].Amount.Equal(in[i].Amount) {
			t.Errorf("record %d amount = %s, want %s", i, out[i].Amount, in[i].Amount)
		}
		if !out[i].Date.Equal(in[i].Date) {
			t.Errorf("record %d date = %v, want %v", i, out[i].Date, in[i].Date)
		}
		if out[i].Category != in[i].Category {
			t.Errorf("record %d category = %q, want %q", i, out[i].Category, in[i].Category)
		}
	}
}

func TestSnapshotSave_ReplacesPreviousContents(t *testing.T) {
	snap := openTestSnapshot(t)

	if err := snap.Save(sample()); err != nil {
		t.Fatal(err)
	}

	replacement := []model.Expense{{
		ID: "only", Title: "Bus", Amount: decimal.NewFromInt(2),
		Category: model.CategoryTransport,
		Date:     time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
	}}
	if err := snap.Save(replacement); err != nil {
		t.Fatal(err)
	}

	out, err := snap.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "only" {
		t.Fatalf("load after replace = %+v, want the single new record", out)
	}
}

func TestSnapshotLoad_EmptyDatabase(t *testing.T) {
	snap := openTestSnapshot(t)

	out, err := snap.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestSnapshotSavedAt(t *testing.T) {
	snap := openTestSnapshot(t)

	at, err := snap.SavedAt()
	if err != nil {
		t.Fatal(err)
	}
	if !at.IsZero() {
		t.Errorf("SavedAt before any save = %v, want zero", at)
	}

	before := time.Now().Add(-2 * time.Second)
	if err := snap.Save(sample()); err != nil {
		t.Fatal(err)
	}

	at, err = snap.SavedAt()
	if err != nil {
		t.Fatal(err)
	}
	if at.Before(before) {
		t.Errorf("SavedAt = %v, want at or after %v", at, before)
	}
}

func TestSnapshotPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "expenses.db")

	snap, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := snap.Save(sample()); err != nil {
		t.Fatal(err)
	}
	if err := snap.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	out, err := reopened.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d after reopen, want 2", len(out))
	}
}
