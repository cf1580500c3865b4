package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/render"
	"github.com/smileynet/agenda/internal/session"
	"github.com/smileynet/agenda/internal/store"
)

// ErrRejected indicates at least one action was rejected or targeted a missing id.
var ErrRejected = errors.New("script: some actions failed")

// Status message keys.
const (
	keyCreated  = "status.created"
	keyUpdated  = "status.updated"
	keyDeleted  = "status.deleted"
	keyNotFound = "status.not_found"
	keyInvalid  = "status.invalid"
	keyEditing  = "status.editing"
)

// Summary counts action results.
type Summary struct {
	Created  int
	Updated  int
	Deleted  int
	Edited   int
	Rejected int
	NotFound int
}

// Failed returns the number of actions that did not apply.
func (s Summary) Failed() int {
	return s.Rejected + s.NotFound
}

// Runner applies scripts to a session and reports each step to a writer.
type Runner struct {
	session       *session.Session
	msgs          event.Messages
	w             io.Writer
	displayLayout string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDisplayLayout sets the date layout of the final table.
func WithDisplayLayout(layout string) RunnerOption {
	return func(r *Runner) {
		if layout != "" {
			r.displayLayout = layout
		}
	}
}

// NewRunner creates a Runner writing to w.
func NewRunner(s *session.Session, msgs event.Messages, w io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{
		session:       s,
		msgs:          msgs,
		w:             w,
		displayLayout: event.DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies every action in order, then prints the final table.
// Failed actions are reported and counted but do not stop the run.
func (r *Runner) Run(s *Script) Summary {
	var sum Summary
	for i, a := range s.Actions {
		r.apply(i+1, a, &sum)
	}
	_, _ = fmt.Fprintf(r.w, "\n%s\n", render.Table(r.session.Records(), r.msgs, r.displayLayout))
	return sum
}

func (r *Runner) apply(n int, a Action, sum *Summary) {
	switch a.Kind() {
	case KindSubmit:
		rec, outcome, err := r.session.Submit(*a.Submit)
		var verr *event.ValidationError
		switch {
		case errors.As(err, &verr):
			sum.Rejected++
			r.line(n, KindSubmit, r.msgs.T(keyInvalid))
			_, _ = io.WriteString(r.w, render.Errors(verr, r.msgs, "      "))
		case err != nil:
			sum.Rejected++
			r.line(n, KindSubmit, err.Error())
		case outcome == session.OutcomeUpdated:
			sum.Updated++
			r.line(n, KindSubmit, r.msgs.T(keyUpdated, rec.ID))
		default:
			sum.Created++
			r.line(n, KindSubmit, r.msgs.T(keyCreated, rec.ID))
		}

	case KindEdit:
		id := *a.Edit
		form, err := r.session.RequestEdit(id)
		if err != nil {
			r.notFound(n, KindEdit, id, err, sum)
			return
		}
		sum.Edited++
		r.line(n, KindEdit, r.msgs.T(keyEditing, id))
		_, _ = io.WriteString(r.w, render.Form(form, r.msgs, "      "))

	case KindDelete:
		id := *a.Delete
		if err := r.session.RequestDelete(id); err != nil {
			r.notFound(n, KindDelete, id, err, sum)
			return
		}
		sum.Deleted++
		r.line(n, KindDelete, r.msgs.T(keyDeleted, id))
	}
}

func (r *Runner) notFound(n int, kind string, id int, err error, sum *Summary) {
	sum.NotFound++
	if errors.Is(err, store.ErrNotFound) {
		r.line(n, kind, r.msgs.T(keyNotFound, id))
		return
	}
	r.line(n, kind, err.Error())
}

func (r *Runner) line(n int, kind, text string) {
	_, _ = fmt.Fprintf(r.w, "[%d] %-6s %s\n", n, kind, text)
}
