// Package dashboard implements the two-pane event TUI: the form on the
// left, the records table on the right.
package dashboard

import (
	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/session"
)

// Mode represents the current dashboard view mode.
type Mode int

const (
	ModeEdit    Mode = iota // Editing the form or browsing the table.
	ModeConfirm             // Waiting for a delete confirmation.
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneForm  Focus = iota // Left pane (form inputs) has focus.
	PaneTable              // Right pane (records table) has focus.
)

// Catalog keys for the status line and pane titles.
const (
	keyStatusCreated  = "status.created"
	keyStatusUpdated  = "status.updated"
	keyStatusDeleted  = "status.deleted"
	keyStatusNotFound = "status.not_found"
	keyStatusInvalid  = "status.invalid"
	keyStatusEditing  = "status.editing"
	keyStatusCleared  = "status.cleared"
	keyFormTitle      = "form.title"
	keyFormSubmit     = "form.submit"
	keyTableTitle     = "table.title"
	keyTableEmpty     = "table.empty"
	keyConfirmDelete  = "confirm.delete"
	keyConfirmHint    = "confirm.hint"
)

// --- Consumer-side interfaces ---

// Session is the event layer the dashboard drives. *session.Session satisfies it.
type Session interface {
	Submit(raw event.RawRecord) (event.Record, session.Outcome, error)
	RequestEdit(id int) (event.RawRecord, error)
	RequestDelete(id int) error
	Records() []event.Record
}

var _ Session = (*session.Session)(nil)
