package dashboard

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/agenda/internal/event"
)

// formState holds the form pane: one text input per form field, the
// focused input, the record being edited and the last validation errors.
type formState struct {
	inputs    []textinput.Model
	focus     int
	editingID int
	errors    map[event.Field]string
}

// newForm creates a form filled with defaults and the first input focused.
func newForm(defaults event.RawRecord) formState {
	inputs := make([]textinput.Model, len(event.FormFields))
	for i, f := range event.FormFields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 128
		ti.SetValue(defaults.Value(f))
		inputs[i] = ti
	}
	inputs[0].Focus()
	return formState{inputs: inputs, editingID: event.NoID}
}

// values returns the current input values. The ID comes from the record
// being edited, empty when creating.
func (f formState) values() event.RawRecord {
	var raw event.RawRecord
	if f.editingID != event.NoID {
		raw.ID = strconv.Itoa(f.editingID)
	}
	for i, field := range event.FormFields {
		raw.Set(field, f.inputs[i].Value())
	}
	return raw
}

// editing reports whether the form is bound to a stored record.
func (f formState) editing() bool {
	return f.editingID != event.NoID
}

// fill loads raw into the inputs and binds the form to id.
func (f formState) fill(raw event.RawRecord, id int) formState {
	f.inputs = slices.Clone(f.inputs)
	for i, field := range event.FormFields {
		f.inputs[i].SetValue(raw.Value(field))
		f.inputs[i].CursorEnd()
	}
	f.editingID = id
	f.errors = nil
	return f
}

// reset restores defaults, leaves edit mode and focuses the first input.
func (f formState) reset(defaults event.RawRecord) formState {
	f = f.fill(defaults, event.NoID)
	f, _ = f.focusAt(0)
	return f
}

// focusAt moves input focus to index i.
func (f formState) focusAt(i int) (formState, tea.Cmd) {
	f.inputs = slices.Clone(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f, f.inputs[i].Focus()
}

func (f formState) focusNext() (formState, tea.Cmd) {
	return f.focusAt((f.focus + 1) % len(f.inputs))
}

func (f formState) focusPrev() (formState, tea.Cmd) {
	return f.focusAt((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

// blur removes focus from every input.
func (f formState) blur() formState {
	f.inputs = slices.Clone(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f
}

// setWidth sizes every input to fit the pane.
func (f formState) setWidth(w int) formState {
	if w < 1 {
		w = 1
	}
	f.inputs = slices.Clone(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Width = w
	}
	return f
}

// update forwards msg to the focused input.
func (f formState) update(msg tea.Msg) (formState, tea.Cmd) {
	f.inputs = slices.Clone(f.inputs)
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders labelled inputs, each followed by its error line if any.
func (f formState) View(msgs event.Messages) string {
	var b strings.Builder
	if f.editing() {
		b.WriteString(titleStyle.Render(msgs.T(keyStatusEditing, f.editingID)))
	} else {
		b.WriteString(titleStyle.Render(msgs.T(keyFormTitle)))
	}
	b.WriteString("\n")

	for i, field := range event.FormFields {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(msgs.T(field.LabelKey())))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := f.errors[field]; ok {
			b.WriteString(errorText.Render("  " + msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedText.Render(msgs.T(keyFormSubmit)))
	return b.String()
}
