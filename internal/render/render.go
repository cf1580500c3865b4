// Package render formats records, form values and validation errors as
// plain text for non-interactive output.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/smileynet/agenda/internal/event"
)

// TableEmptyKey is the catalog key shown in place of an empty table.
const TableEmptyKey = "table.empty"

// Columns lists the table columns in display order.
var Columns = append([]event.Field{event.FieldID}, event.FormFields...)

// Headers returns the localized column titles.
func Headers(msgs event.Messages) []string {
	out := make([]string, len(Columns))
	for i, f := range Columns {
		out[i] = msgs.T(f.LabelKey())
	}
	return out
}

// Row returns the cell values of rec, formatting the date with displayLayout.
func Row(rec event.Record, displayLayout string) []string {
	return []string{
		strconv.Itoa(rec.ID),
		rec.Name,
		rec.Place,
		rec.Date.Format(displayLayout),
		rec.Organizer,
		rec.Contact,
	}
}

// Table renders records as a bordered text table.
func Table(records []event.Record, msgs event.Messages, displayLayout string) string {
	if len(records) == 0 {
		return msgs.T(TableEmptyKey)
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = Row(rec, displayLayout)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Headers(msgs)...).
		Rows(rows...).
		String()
}

// Errors renders one "label: message" line per failing field, indented by prefix.
func Errors(verr *event.ValidationError, msgs event.Messages, prefix string) string {
	var b strings.Builder
	for _, f := range verr.Failed() {
		msg, _ := verr.Message(f)
		fmt.Fprintf(&b, "%s%s: %s\n", prefix, msgs.T(f.LabelKey()), msg)
	}
	return b.String()
}

// Form renders form values as "label: value" lines, indented by prefix.
func Form(raw event.RawRecord, msgs event.Messages, prefix string) string {
	var b strings.Builder
	for _, f := range Columns {
		fmt.Fprintf(&b, "%s%s: %s\n", prefix, msgs.T(f.LabelKey()), raw.Value(f))
	}
	return b.String()
}
