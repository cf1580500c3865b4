// Package session is the controller between the user-facing layer and the
// core: it owns one validator and one store and implements the submit, edit
// and delete actions.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/metrics"
	"github.com/smileynet/agenda/internal/store"
)

// Outcome describes what a successful submission did to the store.
type Outcome int

const (
	OutcomeNone    Outcome = iota // Submission rejected; store unchanged.
	OutcomeCreated                // A new record was appended.
	OutcomeUpdated                // An existing record was replaced.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return metrics.OutcomeCreated
	case OutcomeUpdated:
		return metrics.OutcomeUpdated
	default:
		return metrics.OutcomeRejected
	}
}

// Session holds the state of one running form. Like the store, it must be
// confined to a single goroutine.
type Session struct {
	validator *event.Validator
	store     *store.Store
	metrics   *metrics.Recorder
	log       *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithMetrics counts outcomes on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Session) { s.metrics = r }
}

// WithLogger logs one line per action to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Session with an empty store.
func New(v *event.Validator, opts ...Option) *Session {
	s := &Session{
		validator: v,
		store:     store.New(),
		log:       log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates raw and, when valid, upserts it. On failure it returns the
// *event.ValidationError with OutcomeNone and the store is untouched.
func (s *Session) Submit(raw event.RawRecord) (event.Record, Outcome, error) {
	rec, err := s.validator.Validate(raw)
	if err != nil {
		var verr *event.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Failed() {
				s.metrics.FieldError(string(f))
			}
		}
		s.metrics.Submission(OutcomeNone.String())
		s.log.Printf("submit: rejected: %v", err)
		return event.Record{}, OutcomeNone, err
	}

	outcome := OutcomeCreated
	if s.store.Contains(rec.ID) {
		outcome = OutcomeUpdated
	}
	rec = s.store.Upsert(rec)

	s.metrics.Submission(outcome.String())
	s.metrics.SetRecords(s.store.Len())
	s.log.Printf("submit: %s #%d", outcome, rec.ID)
	return rec, outcome, nil
}

// RequestEdit returns the form values of the record with the given id.
// It does not go through the validator.
func (s *Session) RequestEdit(id int) (event.RawRecord, error) {
	rec, err := s.store.Get(id)
	s.metrics.Edit(err == nil)
	if err != nil {
		s.log.Printf("edit: #%d not found", id)
		return event.RawRecord{}, fmt.Errorf("session: edit: %w", err)
	}
	s.log.Printf("edit: #%d loaded", id)
	return s.validator.Format(rec), nil
}

// RequestDelete removes the record with the given id.
func (s *Session) RequestDelete(id int) error {
	err := s.store.Delete(id)
	s.metrics.Deletion(err == nil)
	if err != nil {
		s.log.Printf("delete: #%d not found", id)
		return fmt.Errorf("session: delete: %w", err)
	}
	s.metrics.SetRecords(s.store.Len())
	s.log.Printf("delete: #%d removed", id)
	return nil
}

// Records returns the current records in order.
func (s *Session) Records() []event.Record {
	return s.store.List()
}

// Validator returns the validator used for submissions.
func (s *Session) Validator() *event.Validator {
	return s.validator
}
