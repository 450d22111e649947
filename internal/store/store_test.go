package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"outlay/internal/api"
	"outlay/internal/model"

	"github.com/shopspring/decimal"
)

// fakeRemote is an in-memory stand-in for the backend. It assigns IDs and
// echoes authoritative records the way the real server does.
type fakeRemote struct {
	records []model.Expense
	nextID  int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	createCalls int
	listCalls   int
}

func (f *fakeRemote) ListExpenses(_ context.Context) ([]model.Expense, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Expense, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeRemote) CreateExpense(_ context.Context, d model.Draft) (model.Expense, error) {
	f.createCalls++
	if f.createErr != nil {
		return model.Expense{}, f.createErr
	}
	f.nextID++
	e := model.Expense{
		ID:       fmt.Sprintf("id-%d", f.nextID),
		Title:    d.Title,
		Amount:   d.Amount,
		Category: d.Category,
		Date:     d.Date,
	}
	f.records = append(f.records, e)
	return e, nil
}

func (f *fakeRemote) UpdateExpense(_ context.Context, id string, d model.Draft) (model.Expense, error) {
	if f.updateErr != nil {
		return model.Expense{}, f.updateErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i] = model.Expense{
				ID: id, Title: d.Title, Amount: d.Amount, Category: d.Category, Date: d.Date,
			}
			return f.records[i], nil
		}
	}
	return model.Expense{}, &api.HTTPError{Status: 404, Message: "not found"}
}

func (f *fakeRemote) DeleteExpense(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return &api.HTTPError{Status: 404, Message: "not found"}
}

// fakeSnapshot is an in-memory Snapshotter.
type fakeSnapshot struct {
	saved []model.Expense
}

func (f *fakeSnapshot) Save(expenses []model.Expense) error {
	f.saved = make([]model.Expense, len(expenses))
	copy(f.saved, expenses)
	return nil
}

func (f *fakeSnapshot) Load() ([]model.Expense, error) {
	return f.saved, nil
}

func draft(title string, amount int64, cat model.Category) model.Draft {
	return model.Draft{
		Title:    title,
		Amount:   decimal.NewFromInt(amount),
		Category: cat,
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate_SequentialCallsGrowCollectionWithUniqueIDs(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Create(ctx, draft(fmt.Sprintf("item-%d", i), 10, model.CategoryOther)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	expenses := s.Expenses()
	if len(expenses) != 5 {
		t.Fatalf("len = %d, want 5", len(expenses))
	}

	seen := make(map[string]bool)
	for _, e := range expenses {
		if seen[e.ID] {
			t.Fatalf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}

	// New records are prepended, so the last create comes first
	if expenses[0].Title != "item-4" {
		t.Errorf("expenses[0].Title = %q, want item-4", expenses[0].Title)
	}
}

func TestCreate_InsertsAuthoritativeEcho(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)

	created, err := s.Create(context.Background(), draft("Coffee", 150, model.CategoryOther))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("server-assigned id missing from inserted record")
	}

	expenses := s.Expenses()
	if len(expenses) != 1 {
		t.Fatalf("len = %d, want 1", len(expenses))
	}
	e := expenses[0]
	if !e.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("amount = %s, want 150", e.Amount)
	}
	wantDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !e.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", e.Date, wantDate)
	}

	data := s.AggregateByCategory()
	if len(data.Labels) != 1 || data.Labels[0] != "Other" {
		t.Fatalf("labels = %v, want [Other]", data.Labels)
	}
	if !data.Values[0].Equal(decimal.NewFromInt(150)) {
		t.Errorf("Other sum = %s, want 150", data.Values[0])
	}
}

func TestCreate_FailureLeavesCollectionUnchangedAndPropagates(t *testing.T) {
	remote := &fakeRemote{createErr: errors.New("boom")}
	s := New(remote, nil, nil)

	_, err := s.Create(context.Background(), draft("x", 1, model.CategoryOther))
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

func TestCreate_ValidationBlocksNetworkCall(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)

	d := draft("", 10, model.CategoryOther)
	_, err := s.Create(context.Background(), d)

	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if remote.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0 (rejected before the network)", remote.createCalls)
	}
}

func TestFetchAll_FailureKeepsCollectionAndClearsLoading(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, draft(fmt.Sprintf("e%d", i), 5, model.CategoryHealth)); err != nil {
			t.Fatal(err)
		}
	}

	remote.listErr = errors.New("network down")
	s.FetchAll(ctx)

	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3 (stale data kept)", s.Len())
	}
	if s.Loading() {
		t.Error("loading flag still set after failed fetch")
	}
	if s.FetchErr() == nil {
		t.Error("FetchErr is nil after failed fetch")
	}

	// A later successful fetch clears the recorded error
	remote.listErr = nil
	s.FetchAll(ctx)
	if s.FetchErr() != nil {
		t.Errorf("FetchErr = %v after successful fetch", s.FetchErr())
	}
}

func TestFetchAll_ReplacesCollectionWithRemote(t *testing.T) {
	remote := &fakeRemote{records: []model.Expense{
		{ID: "a", Title: "Bus", Amount: decimal.NewFromInt(3), Category: model.CategoryTransport, Date: time.Now()},
		{ID: "b", Title: "Rent", Amount: decimal.NewFromInt(900), Category: model.CategoryHousing, Date: time.Now()},
	}}
	s := New(remote, nil, nil)

	s.FetchAll(context.Background())

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if s.FetchErr() != nil {
		t.Fatalf("FetchErr = %v", s.FetchErr())
	}
}

func TestFetchAll_EmptyStoreServesSnapshotWhenOffline(t *testing.T) {
	snap := &fakeSnapshot{saved: []model.Expense{
		{ID: "cached", Title: "Old", Amount: decimal.NewFromInt(7), Category: model.CategoryOther, Date: time.Now()},
	}}
	remote := &fakeRemote{listErr: errors.New("offline")}
	s := New(remote, snap, nil)

	s.FetchAll(context.Background())

	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1 from snapshot", s.Len())
	}
	if !s.Stale() {
		t.Error("Stale() = false, want true for snapshot data")
	}
}

func TestFetchAll_SuccessWritesSnapshot(t *testing.T) {
	snap := &fakeSnapshot{}
	remote := &fakeRemote{records: []model.Expense{
		{ID: "a", Title: "Bus", Amount: decimal.NewFromInt(3), Category: model.CategoryTransport, Date: time.Now()},
	}}
	s := New(remote, snap, nil)

	s.FetchAll(context.Background())

	if len(snap.saved) != 1 {
		t.Fatalf("snapshot holds %d records, want 1", len(snap.saved))
	}
	if s.Stale() {
		t.Error("Stale() = true after live fetch")
	}
}

func TestUpdate_ReplacesMatchingRecord(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, draft("Lunch", 12, model.CategoryGroceries))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.Update(ctx, created.ID, draft("Dinner", 25, model.CategoryEntertainment))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Dinner" {
		t.Errorf("echo title = %q, want Dinner", updated.Title)
	}

	expenses := s.Expenses()
	if len(expenses) != 1 {
		t.Fatalf("len = %d, want 1", len(expenses))
	}
	if expenses[0].Title != "Dinner" || !expenses[0].Amount.Equal(decimal.NewFromInt(25)) {
		t.Errorf("local record = %+v, want the authoritative echo", expenses[0])
	}
}

func TestUpdate_NoLocalMatchTriggersRefetchAndConverges(t *testing.T) {
	// The record exists remotely but the mirror never fetched it.
	remote := &fakeRemote{records: []model.Expense{
		{ID: "ghost", Title: "Old", Amount: decimal.NewFromInt(1), Category: model.CategoryOther, Date: time.Now()},
	}}
	s := New(remote, nil, nil)
	ctx := context.Background()

	if _, err := s.Update(ctx, "ghost", draft("New", 2, model.CategoryOther)); err != nil {
		t.Fatalf("update: %v", err)
	}

	if remote.listCalls == 0 {
		t.Fatal("expected a refetch when no local record matched")
	}
	expenses := s.Expenses()
	if len(expenses) != 1 || expenses[0].Title != "New" {
		t.Fatalf("local state = %+v, want the updated remote record", expenses)
	}
}

func TestUpdate_FailurePropagates(t *testing.T) {
	remote := &fakeRemote{updateErr: errors.New("boom")}
	s := New(remote, nil, nil)

	_, err := s.Update(context.Background(), "any", draft("x", 1, model.CategoryOther))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRemove_SecondCallSurfacesErrorWithoutCrashing(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, draft("Snack", 3, model.CategoryGroceries))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Remove(ctx, created.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}

	// Second remove hits the remote 404; a write-path error, not a crash
	err = s.Remove(ctx, created.ID)
	var he *api.HTTPError
	if !errors.As(err, &he) || he.Status != 404 {
		t.Fatalf("second remove err = %v, want HTTPError 404", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}

func TestRemove_FailureLeavesLocalStateUnchanged(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, draft("Keep", 9, model.CategoryHealth))
	if err != nil {
		t.Fatal(err)
	}

	remote.deleteErr = errors.New("boom")
	if err := s.Remove(ctx, created.ID); err == nil {
		t.Fatal("expected error")
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1 (unchanged on failure)", s.Len())
	}
}

func TestExpenses_ReturnsCopy(t *testing.T) {
	remote := &fakeRemote{}
	s := New(remote, nil, nil)

	if _, err := s.Create(context.Background(), draft("A", 1, model.CategoryOther)); err != nil {
		t.Fatal(err)
	}

	out := s.Expenses()
	out[0].Title = "mutated"

	if s.Expenses()[0].Title != "A" {
		t.Error("mutating the returned slice leaked into the store")
	}
}
