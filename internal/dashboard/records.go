package dashboard

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/render"
)

// idColumnWidth is the fixed width of the ID column.
const idColumnWidth = 4

// cellPadding is the horizontal padding the default table styles add per cell.
const cellPadding = 2

// newRecordTable creates an empty, unfocused records table.
func newRecordTable(msgs event.Messages) table.Model {
	t := table.New(
		table.WithColumns(recordColumns(msgs, 0)),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true)
	t.SetStyles(s)
	return t
}

// recordColumns builds the table columns for a pane of the given inner width.
// The ID column is fixed and the rest share what remains.
func recordColumns(msgs event.Messages, width int) []table.Column {
	headers := render.Headers(msgs)
	cols := make([]table.Column, len(headers))
	n := len(headers) - 1
	rest := (width - idColumnWidth - cellPadding*len(headers)) / n
	if rest < 6 {
		rest = 6
	}
	for i, h := range headers {
		w := rest
		if i == 0 {
			w = idColumnWidth
		}
		cols[i] = table.Column{Title: h, Width: w}
	}
	return cols
}

// recordRows converts records into table rows.
func recordRows(records []event.Record, displayLayout string) []table.Row {
	rows := make([]table.Row, len(records))
	for i, rec := range records {
		rows[i] = table.Row(render.Row(rec, displayLayout))
	}
	return rows
}
