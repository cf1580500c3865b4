package dashboard

import (
	"testing"
	"time"

	"github.com/smileynet/agenda/internal/event"
)

func TestRecordColumns_SpanishTitles(t *testing.T) {
	cols := recordColumns(spanish(t), 100)

	want := []string{"ID", "Nombre", "Lugar", "Fecha", "Organizador", "Contacto"}
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for i, w := range want {
		if cols[i].Title != w {
			t.Errorf("column %d = %q, want %q", i, cols[i].Title, w)
		}
	}
	if cols[0].Width != idColumnWidth {
		t.Errorf("ID width = %d, want %d", cols[0].Width, idColumnWidth)
	}
}

func TestRecordColumns_NarrowPaneKeepsMinimum(t *testing.T) {
	// Given: a pane with no room
	cols := recordColumns(spanish(t), 0)

	// Then: the data columns keep a readable minimum
	for _, c := range cols[1:] {
		if c.Width < 6 {
			t.Errorf("column %q width = %d, want >= 6", c.Title, c.Width)
		}
	}
}

func TestRecordRows_FormatsDate(t *testing.T) {
	recs := []event.Record{{ID: 5, Name: "Ana", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}}

	rows := recordRows(recs, "02/01/2006")

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][0] != "5" || rows[0][3] != "01/05/2024" {
		t.Errorf("row = %v, want id 5 and date 01/05/2024", rows[0])
	}
}
