package dashboard

import (
	"fmt"
	"strings"

	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/render"
)

// confirmState holds the record awaiting a delete confirmation.
type confirmState struct {
	record event.Record
}

// View renders the confirmation screen.
func (cs confirmState) View(msgs event.Messages, displayLayout string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(msgs.T(keyConfirmDelete, cs.record.ID)))
	b.WriteString("\n\n")

	headers := render.Headers(msgs)
	row := render.Row(cs.record, displayLayout)
	for i := 1; i < len(headers); i++ {
		fmt.Fprintf(&b, "  %s: %s\n", labelStyle.Render(headers[i]), row[i])
	}

	b.WriteString("\n  ")
	b.WriteString(msgs.T(keyConfirmHint))
	return b.String()
}
