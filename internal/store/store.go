// Package store holds the ordered, in-memory collection of event records
// and assigns their identities.
package store

import (
	"errors"
	"fmt"

	"github.com/smileynet/agenda/internal/event"
)

// ErrNotFound indicates no record has the requested id.
var ErrNotFound = errors.New("store: record not found")

// Store is an ordered sequence of records plus the next id to assign.
// It is not safe for concurrent use; callers must confine access to a
// single goroutine (e.g., the Bubble Tea update loop).
type Store struct {
	records []event.Record
	nextID  int
}

// New creates an empty store whose first assigned id is 0.
func New() *Store {
	return &Store{}
}

// Upsert replaces the record with rec.ID in place, or, when no record has
// that id, assigns the next id and appends rec at the end.
// It returns the stored record.
func (s *Store) Upsert(rec event.Record) event.Record {
	if i := s.index(rec.ID); i >= 0 {
		s.records[i] = rec
		return rec
	}
	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return rec
}

// Delete removes the single record with the given id. Other records keep
// their relative order. A missing id returns ErrNotFound and changes nothing.
func (s *Store) Delete(id int) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	s.records = append(s.records[:i:i], s.records[i+1:]...)
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (event.Record, error) {
	i := s.index(id)
	if i < 0 {
		return event.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.records[i], nil
}

// Contains reports whether a record has the given id.
func (s *Store) Contains(id int) bool {
	return s.index(id) >= 0
}

// List returns a copy of the records in order.
func (s *Store) List() []event.Record {
	return append([]event.Record(nil), s.records...)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// NextID returns the id the next inserted record will receive.
func (s *Store) NextID() int {
	return s.nextID
}

func (s *Store) index(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
