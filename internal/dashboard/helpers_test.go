package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/i18n"
	"github.com/smileynet/agenda/internal/session"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

func collectKeys(bindings []key.Binding) []string {
	var keys []string
	for _, b := range bindings {
		keys = append(keys, b.Keys()...)
	}
	return keys
}

func containsKey(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

// spanish returns the embedded Spanish printer.
func spanish(t *testing.T) *i18n.Printer {
	t.Helper()
	c, err := i18n.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	p, err := c.Printer("es")
	if err != nil {
		t.Fatalf("Printer(es) error = %v", err)
	}
	return p
}

// newTestSession returns an empty session validating with Spanish messages.
func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	return session.New(event.NewValidator(spanish(t)))
}

// newTestModel returns a sized model over s with the "Juan Perez" default.
func newTestModel(t *testing.T, s Session) Model {
	t.Helper()
	m := NewModel(s, spanish(t), WithDefaults(event.RawRecord{Name: "Juan Perez"}))
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func ana() event.RawRecord {
	return event.RawRecord{Name: "Ana", Place: "Hall", Date: "2024-05-01", Organizer: "Beto", Contact: "a@b.com"}
}

func carla() event.RawRecord {
	return event.RawRecord{Name: "Carla", Place: "Patio", Date: "2024-06-01", Organizer: "Dani", Contact: "c@d.com"}
}

// update sends msg to m and returns the resulting Model.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// submitRaw fills the form with raw and presses enter.
func submitRaw(t *testing.T, m Model, raw event.RawRecord) Model {
	t.Helper()
	m.form = m.form.fill(raw, m.form.editingID)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}
