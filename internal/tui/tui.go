// Package tui provides a Bubble Tea terminal form for discpack.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/discpack/internal/catalog"
	"github.com/handiism/discpack/internal/config"
	"github.com/handiism/discpack/internal/generate"
	"github.com/handiism/discpack/internal/settings"
	"github.com/spf13/afero"
)

// LegacyHint is shown while the form selects the legacy datapack without
// a templates directory.
const LegacyHint = "Legacy datapack templates are not built in; set templates in the config file"

// State represents the current UI state.
type State int

const (
	StateForm State = iota
	StateGenerating
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   generate.ProgressLevel
}

// field is one row of the form.
type field struct {
	def settings.Definition
	sel selector
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state   State
	base    *config.Settings
	form    *settings.Form
	catalog textinput.Model
	fields  []field
	focus   int
	spinner spinner.Model
	logs    []LogEntry
	notice  string
	err     error

	fs     afero.Fs
	events chan tea.Msg
	result DoneMsg

	verbose bool
	width   int
}

// Message types
type (
	// ProgressMsg is sent for every generator progress event.
	ProgressMsg struct {
		Event generate.ProgressEvent
	}

	// DoneMsg is sent when both packs have been attempted.
	DoneMsg struct {
		Datapack     generate.Status
		Resourcepack generate.Status
		Discs        int
		Err          error
	}
)

// NewModel creates a new TUI model starting from base settings.
func NewModel(base *config.Settings, catalogPath string) Model {
	ti := textinput.New()
	ti.Placeholder = "discs.yaml"
	ti.CharLimit = 500
	ti.Width = 40
	ti.Prompt = ""
	ti.SetValue(catalogPath)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C77DFF"))

	form := settings.NewForm(settings.Definitions(), settings.NewLegacyLock())
	for key, v := range base.ToMap() {
		if _, ok := settings.Lookup(key); ok {
			_ = form.Set(key, v)
		}
	}

	m := Model{
		state:   StateForm,
		base:    base,
		form:    form,
		catalog: ti,
		spinner: sp,
		fs:      afero.NewOsFs(),
	}
	for _, def := range form.Definitions() {
		m.fields = append(m.fields, field{def: def, sel: newSelector(def)})
	}
	m.syncFields()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Event.Level != generate.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > 12 {
				m.logs = m.logs[len(m.logs)-12:]
			}
		}
		return m, waitForMsg(m.events)

	case DoneMsg:
		m.result = msg
		m.events = nil
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.state {
	case StateGenerating:
		return m, nil

	case StateComplete, StateError:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "r":
			m.state = StateForm
			m.logs = nil
			m.err = nil
			m.notice = ""
			return m, m.focusCurrent()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+v":
		m.verbose = !m.verbose
		return m, nil
	case "tab", "down", "enter":
		return m, m.move(1)
	case "shift+tab", "up":
		return m, m.move(-1)
	case "ctrl+s":
		m.commit()
		if m.notice != "" {
			return m, nil
		}
		m.state = StateGenerating
		m.logs = nil
		cmd := m.startGenerate()
		return m, tea.Batch(cmd, m.spinner.Tick)
	}

	if m.focus == 0 {
		var cmd tea.Cmd
		m.catalog, cmd = m.catalog.Update(msg)
		return m, cmd
	}

	f := m.fields[m.focus-1]
	if m.form.Locked(f.def.Key) {
		return m, nil
	}
	commit, cmd := f.sel.Update(msg)
	if commit {
		m.commit()
	}
	return m, cmd
}

// move commits the focused field and focuses the next one.
func (m *Model) move(delta int) tea.Cmd {
	m.commit()
	m.blurCurrent()
	n := len(m.fields) + 1
	m.focus = (m.focus + delta + n) % n
	return m.focusCurrent()
}

func (m *Model) focusCurrent() tea.Cmd {
	if m.focus == 0 {
		return m.catalog.Focus()
	}
	return m.fields[m.focus-1].sel.Focus()
}

func (m *Model) blurCurrent() {
	if m.focus == 0 {
		m.catalog.Blur()
		return
	}
	m.fields[m.focus-1].sel.Blur()
}

// commit stores the focused selector's value in the form and refreshes
// every field, since rules may have forced other settings.
func (m *Model) commit() {
	m.notice = ""
	if m.focus > 0 {
		f := m.fields[m.focus-1]
		if !m.form.Locked(f.def.Key) {
			if err := m.form.Set(f.def.Key, f.sel.Value()); err != nil {
				m.notice = err.Error()
			}
		}
	}
	m.syncFields()
}

func (m *Model) syncFields() {
	for _, f := range m.fields {
		f.sel.Force(m.form.Value(f.def.Key))
	}
}

// Settings returns the settings the form currently describes.
func (m Model) Settings() (*config.Settings, error) {
	values := m.base.ToMap()
	for k, v := range m.form.Values() {
		values[k] = v
	}
	return config.FromMap(values)
}

// startGenerate loads the catalog and runs both packs in the background.
func (m *Model) startGenerate() tea.Cmd {
	events := make(chan tea.Msg, 64)
	m.events = events

	s, settingsErr := m.Settings()
	path := strings.TrimSpace(m.catalog.Value())
	fsys := m.fs

	go func() {
		defer close(events)

		if settingsErr != nil {
			events <- DoneMsg{Err: settingsErr}
			return
		}
		if err := s.Validate(); err != nil {
			events <- DoneMsg{Err: err}
			return
		}
		if path == "" {
			events <- DoneMsg{Err: fmt.Errorf("no disc list given")}
			return
		}

		entries, err := catalog.Load(fsys, path)
		if err != nil {
			events <- DoneMsg{Err: err}
			return
		}

		gen := generate.NewGenerator(s,
			generate.WithFs(fsys),
			generate.WithProgress(func(e generate.ProgressEvent) {
				events <- ProgressMsg{Event: e}
			}),
		)
		done := DoneMsg{Discs: entries.Len()}
		done.Datapack = gen.Datapack(entries)
		done.Resourcepack = gen.Resourcepack(entries)
		if done.Datapack != generate.StatusSuccess || done.Resourcepack != generate.StatusSuccess {
			done.Err = fmt.Errorf("datapack: %s, resourcepack: %s", done.Datapack, done.Resourcepack)
		}
		events <- done
	}()

	return waitForMsg(events)
}

func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ discpack"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Custom music disc datapack and resourcepack generator"))
	b.WriteString("\n\n")

	switch m.state {
	case StateForm:
		b.WriteString(m.viewForm())
	case StateGenerating:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Generating packs..."))
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs())
	case StateComplete:
		b.WriteString(boxStyle.Render(fmt.Sprintf(
			"✨ Packs generated!\n\nDiscs: %d\nDatapack: %s\nResourcepack: %s",
			m.result.Discs, m.result.Datapack, m.result.Resourcepack,
		)))
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	case StateError:
		b.WriteString(errorStyle.Render("❌ Error occurred:"))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(fmt.Sprintf("  %s\n\n", m.err.Error()))
		}
		b.WriteString(m.renderLogs())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	b.WriteString(m.row(0, "Disc list", m.catalog.View()))
	b.WriteString("\n")
	for i, f := range m.fields {
		locked := m.form.Locked(f.def.Key)
		b.WriteString(m.row(i+1, f.def.Label, f.sel.View(m.focus == i+1, locked)))
	}

	b.WriteString("\n")
	if m.focus > 0 {
		b.WriteString(dimStyle.Render(m.fields[m.focus-1].def.Tooltip))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(warningStyle.Render("! " + m.notice))
		b.WriteString("\n")
	}
	if m.form.Value("legacy_dp") == true && m.base.Templates == "" {
		b.WriteString(warningStyle.Render("! " + LegacyHint))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output: %s", m.base.Output)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) row(index int, label, value string) string {
	prefix := "  "
	style := labelStyle
	if m.focus == index {
		prefix = "› "
		style = labelStyle.Inherit(focusedStyle)
	}
	return prefix + style.Render(label) + value + "\n"
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case generate.LevelError:
			style = errorStyle
			prefix = "✗"
		case generate.LevelWarning:
			style = warningStyle
			prefix = "!"
		case generate.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case generate.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateForm:
		return "tab/↑↓: move • space/←→: change • ctrl+s: generate • ctrl+v: verbose • esc: quit"
	case StateComplete, StateError:
		return "r: back to form • q: quit"
	}
	return "ctrl+c: quit"
}

// Run starts the TUI application.
func Run(base *config.Settings, catalogPath string) error {
	p := tea.NewProgram(NewModel(base, catalogPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
