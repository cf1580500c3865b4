package dashboard

import (
	"testing"
	"time"

	"github.com/smileynet/agenda/internal/event"
)

func TestConfirm_View(t *testing.T) {
	// Given: a confirm state for a stored record
	cs := confirmState{record: event.Record{
		ID:        3,
		Name:      "Ana",
		Place:     "Hall",
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Organizer: "Beto",
		Contact:   "a@b.com",
	}}

	// When: the view is rendered
	view := cs.View(spanish(t), "02/01/2006")

	// Then: it asks about the id and lists the record's fields
	for _, want := range []string{"¿Borrar el evento #3?", "Nombre", "Ana", "Hall", "01/05/2024", "a@b.com", "[Enter] Borrar", "[Esc] Cancelar"} {
		if !containsPlainText(view, want) {
			t.Errorf("view should contain %q, got:\n%s", want, view)
		}
	}
}
