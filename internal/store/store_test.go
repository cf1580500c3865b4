package store

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/smileynet/agenda/internal/event"
)

func newRecord(name string) event.Record {
	return event.Record{
		ID:        event.NoID,
		Name:      name,
		Place:     "Hall",
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Organizer: "Beto",
		Contact:   "a@b.com",
	}
}

func ids(recs []event.Record) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestStore_MonotonicIDs(t *testing.T) {
	// Given: an empty store
	s := New()

	// When: N new records are inserted
	const n = 5
	for i := 0; i < n; i++ {
		got := s.Upsert(newRecord("r"))
		if got.ID != i {
			t.Errorf("insert %d: ID = %d, want %d", i, got.ID, i)
		}
	}

	// Then: ids are 0..N-1 in insertion order
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(ids(s.List()), want) {
		t.Errorf("ids = %v, want %v", ids(s.List()), want)
	}
	if s.NextID() != n {
		t.Errorf("NextID() = %d, want %d", s.NextID(), n)
	}
}

func TestStore_UnmatchedIDGetsNextID(t *testing.T) {
	s := New()
	rec := newRecord("Ana")
	rec.ID = 42

	got := s.Upsert(rec)

	if got.ID != 0 {
		t.Errorf("ID = %d, want 0", got.ID)
	}
	if s.Contains(42) {
		t.Error("store should not contain id 42")
	}
}

func TestStore_UpsertReplacesInPlace(t *testing.T) {
	s := New()
	s.Upsert(newRecord("a"))
	s.Upsert(newRecord("b"))
	s.Upsert(newRecord("c"))

	updated := newRecord("B")
	updated.ID = 1
	got := s.Upsert(updated)

	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	list := s.List()
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[1].Name != "B" {
		t.Errorf("list[1].Name = %q, want %q", list[1].Name, "B")
	}
	if list[0].Name != "a" || list[2].Name != "c" {
		t.Errorf("neighbours changed: %q, %q", list[0].Name, list[2].Name)
	}
	if s.NextID() != 3 {
		t.Errorf("NextID() = %d, want 3 (update must not consume an id)", s.NextID())
	}
}

func TestStore_UpsertIdempotent(t *testing.T) {
	s := New()
	rec := s.Upsert(newRecord("Ana"))

	s.Upsert(rec)
	s.Upsert(rec)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, err := s.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != rec {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := New()
	s.Upsert(newRecord("first"))
	rec := s.Upsert(newRecord("second"))

	got, err := s.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != rec {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}
}

func TestStore_DeleteRemovesOnlyTarget(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		s.Upsert(newRecord(name))
	}

	if err := s.Delete(2); err != nil {
		t.Fatalf("Delete(2) error = %v", err)
	}

	if want := []int{0, 1, 3}; !slices.Equal(ids(s.List()), want) {
		t.Errorf("ids = %v, want %v", ids(s.List()), want)
	}
	if _, err := s.Get(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(2) error = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteDoesNotReuseIDs(t *testing.T) {
	s := New()
	s.Upsert(newRecord("a"))
	s.Upsert(newRecord("b"))
	if err := s.Delete(1); err != nil {
		t.Fatal(err)
	}

	got := s.Upsert(newRecord("c"))

	if got.ID != 2 {
		t.Errorf("ID after delete = %d, want 2", got.ID)
	}
}

func TestStore_DeleteNotFound(t *testing.T) {
	s := New()
	s.Upsert(newRecord("a"))

	err := s.Delete(9)

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(9) error = %v, want ErrNotFound", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (store unchanged)", s.Len())
	}
}

func TestStore_GetNotFound(t *testing.T) {
	s := New()

	_, err := s.Get(0)

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(0) error = %v, want ErrNotFound", err)
	}
}

func TestStore_ListIsCopy(t *testing.T) {
	s := New()
	s.Upsert(newRecord("a"))

	list := s.List()
	list[0].Name = "mutated"

	got, _ := s.Get(0)
	if got.Name != "a" {
		t.Errorf("store record mutated through List(): %q", got.Name)
	}
}

func TestStore_DeleteKeepsEarlierListsIntact(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c"} {
		s.Upsert(newRecord(name))
	}
	before := s.List()

	if err := s.Delete(0); err != nil {
		t.Fatal(err)
	}

	if want := []int{0, 1, 2}; !slices.Equal(ids(before), want) {
		t.Errorf("earlier List() = %v, want %v", ids(before), want)
	}
}
