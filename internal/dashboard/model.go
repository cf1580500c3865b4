package dashboard

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/agenda/internal/event"
	"github.com/smileynet/agenda/internal/session"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// statusHeight is the number of lines reserved for the status line.
const statusHeight = 1

// tableTitleHeight is the number of lines above the table (title + gap).
const tableTitleHeight = 2

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Option configures a Model.
type Option func(*Model)

// WithDefaults sets the values the form is filled with on start and after
// each created record.
func WithDefaults(raw event.RawRecord) Option {
	return func(m *Model) { m.defaults = raw }
}

// WithDisplayLayout sets the time layout of the table's date column.
func WithDisplayLayout(layout string) Option {
	return func(m *Model) {
		if layout != "" {
			m.displayLayout = layout
		}
	}
}

// Model is the root Bubble Tea model for the event form.
// It manages a two-pane layout with mode-based routing and focus management.
type Model struct {
	session       Session
	msgs          event.Messages
	defaults      event.RawRecord
	displayLayout string

	mode   Mode
	focus  Focus
	width  int
	height int

	form    formState
	table   table.Model
	records []event.Record
	confirm confirmState

	status    string
	statusErr bool

	help        help.Model
	formKeys    formKeys
	tableKeys   tableKeys
	confirmKeys confirmKeys
}

// NewModel creates a form Model with the form pane focused and the table
// loaded from the session.
func NewModel(s Session, msgs event.Messages, opts ...Option) Model {
	m := Model{
		session:       s,
		msgs:          msgs,
		displayLayout: event.DefaultDateLayout,
		mode:          ModeEdit,
		focus:         PaneForm,
		help:          help.New(),
		formKeys:      FormKeyMap(),
		tableKeys:     TableKeyMap(),
		confirmKeys:   ConfirmKeyMap(),
	}
	for _, o := range opts {
		o(&m)
	}
	m.form = newForm(m.defaults)
	m.table = newRecordTable(msgs)
	m.refresh()
	return m
}

// Init starts the cursor blink of the focused input.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Records returns the records currently shown in the table.
func (m Model) Records() []event.Record {
	return m.records
}

// Status returns the text of the status line.
func (m Model) Status() string {
	return m.status
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		leftWidth, rightWidth := PaneWidths(msg.Width)
		m.form = m.form.setWidth(leftWidth - borderChrome - 4)
		innerRight := rightWidth - borderChrome
		if innerRight < 0 {
			innerRight = 0
		}
		m.table.SetColumns(recordColumns(m.msgs, innerRight))
		m.table.SetWidth(innerRight)
		m.table.SetHeight(max(m.contentHeight()-tableTitleHeight, 1))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input messages go to the focused input.
	if m.mode == ModeEdit && m.focus == PaneForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes key messages with global and mode-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch {
	case m.mode == ModeConfirm:
		return m.handleConfirmKey(msg)
	case m.focus == PaneTable:
		return m.handleTableKey(msg)
	default:
		return m.handleFormKey(msg)
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.formKeys.Next):
		m.form, cmd = m.form.focusNext()
	case key.Matches(msg, m.formKeys.Prev):
		m.form, cmd = m.form.focusPrev()
	case key.Matches(msg, m.formKeys.Submit):
		m = m.submit()
	case key.Matches(msg, m.formKeys.Clear):
		m.form = m.form.reset(m.defaults)
		m.setStatus(m.msgs.T(keyStatusCleared), false)
	case key.Matches(msg, m.formKeys.Switch):
		m = m.focusTable()
	default:
		m.form, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.tableKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.tableKeys.Up):
		if len(m.records) > 0 {
			m.table.MoveUp(1)
		}
	case key.Matches(msg, m.tableKeys.Down):
		if len(m.records) > 0 {
			m.table.MoveDown(1)
		}
	case key.Matches(msg, m.tableKeys.Edit):
		m, cmd = m.edit()
	case key.Matches(msg, m.tableKeys.Delete):
		if rec, ok := m.selected(); ok {
			m.confirm = confirmState{record: rec}
			m.mode = ModeConfirm
		}
	case key.Matches(msg, m.tableKeys.Switch):
		m, cmd = m.focusForm()
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.confirmKeys.Confirm):
		m = m.deleteConfirmed()
	case key.Matches(msg, m.confirmKeys.Cancel):
		m.mode = ModeEdit
	}
	return m, nil
}

// submit sends the form to the session. A created record resets the form;
// an updated one keeps the form bound to its id.
func (m Model) submit() Model {
	rec, outcome, err := m.session.Submit(m.form.values())
	if err != nil {
		var verr *event.ValidationError
		if errors.As(err, &verr) {
			m.form.errors = verr.Fields
			m.setStatus(m.msgs.T(keyStatusInvalid), true)
		} else {
			m.setStatus(err.Error(), true)
		}
		return m
	}

	m.refresh()
	switch outcome {
	case session.OutcomeUpdated:
		m.form.errors = nil
		m.form.editingID = rec.ID
		m.setStatus(m.msgs.T(keyStatusUpdated, rec.ID), false)
	default:
		m.form = m.form.reset(m.defaults)
		m.setStatus(m.msgs.T(keyStatusCreated, rec.ID), false)
	}
	return m
}

// edit pre-fills the form with the selected record and focuses it.
func (m Model) edit() (Model, tea.Cmd) {
	rec, ok := m.selected()
	if !ok {
		return m, nil
	}
	raw, err := m.session.RequestEdit(rec.ID)
	if err != nil {
		m.setStatus(m.msgs.T(keyStatusNotFound, rec.ID), true)
		m.refresh()
		return m, nil
	}
	m.form = m.form.fill(raw, rec.ID)
	m.setStatus(m.msgs.T(keyStatusEditing, rec.ID), false)
	return m.focusForm()
}

// deleteConfirmed removes the record held by the confirmation screen.
// Deleting the record being edited leaves edit mode.
func (m Model) deleteConfirmed() Model {
	id := m.confirm.record.ID
	m.mode = ModeEdit
	m.confirm = confirmState{}
	if err := m.session.RequestDelete(id); err != nil {
		m.setStatus(m.msgs.T(keyStatusNotFound, id), true)
	} else {
		m.setStatus(m.msgs.T(keyStatusDeleted, id), false)
	}
	if m.form.editingID == id {
		m.form.editingID = event.NoID
	}
	m.refresh()
	return m
}

func (m Model) focusTable() Model {
	m.form = m.form.blur()
	m.focus = PaneTable
	m.table.Focus()
	return m
}

func (m Model) focusForm() (Model, tea.Cmd) {
	m.table.Blur()
	m.focus = PaneForm
	var cmd tea.Cmd
	m.form, cmd = m.form.focusAt(m.form.focus)
	return m, cmd
}

// selected returns the record under the table cursor.
func (m Model) selected() (event.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return event.Record{}, false
	}
	return m.records[i], true
}

// refresh reloads the records from the session and keeps the cursor in range.
func (m *Model) refresh() {
	m.records = m.session.Records()
	m.table.SetRows(recordRows(m.records, m.displayLayout))
	switch c := m.table.Cursor(); {
	case len(m.records) == 0:
		m.table.SetCursor(0)
	case c >= len(m.records):
		m.table.SetCursor(len(m.records) - 1)
	case c < 0:
		m.table.SetCursor(0)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome, the status line and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - statusHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// helpKeys returns the key map for the current mode and focus.
func (m Model) helpKeys() help.KeyMap {
	return HelpBindings(m.mode, m.focus)
}

// View renders the two-pane layout with status line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneForm && m.mode == ModeEdit {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftStyle = leftStyle.
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	leftPane := leftStyle.Render(m.form.View(m.msgs))
	rightPane := rightStyle.Render(m.viewRight())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.viewStatus(), m.help.View(m.helpKeys()))
}

// viewRight renders the records table, or the confirmation screen.
func (m Model) viewRight() string {
	if m.mode == ModeConfirm {
		return m.confirm.View(m.msgs, m.displayLayout)
	}
	title := titleStyle.Render(m.msgs.T(keyTableTitle))
	if len(m.records) == 0 {
		return title + "\n\n" + mutedText.Render(m.msgs.T(keyTableEmpty))
	}
	return title + "\n\n" + m.table.View()
}

func (m Model) viewStatus() string {
	if m.statusErr {
		return errorText.Render(m.status)
	}
	return okText.Render(m.status)
}
