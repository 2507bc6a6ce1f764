// Package tui provides an interactive terminal editor for flag masks.
package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/tui/themes"
)

// State represents the current state of the editor.
type State int

const (
	StateBrowse State = iota
	StateSearch
	StateAccepted
	StateCanceled
)

// chromeLines is the height taken by the header, search line and footer.
const chromeLines = 7

// Model holds the flag editor state.
type Model struct {
	theme    themes.Theme
	catalog  *flags.Catalog
	original flags.Set
	selected flags.Set
	search   textinput.Model
	help     help.Model
	keymap   KeyMap
	visible  []flags.Definition
	config   Config
	cursor   int
	offset   int
	width    int
	height   int
	state    State
}

// NewModel creates an editor over catalog starting from initial.
func NewModel(catalog *flags.Catalog, initial flags.Set, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	search := textinput.New()
	search.Placeholder = "name or description"
	search.Prompt = "/ "
	search.CharLimit = 40

	if initial == nil {
		initial = flags.NewSet()
	}

	m := Model{
		theme:    cfg.Theme,
		catalog:  catalog,
		original: initial.Clone(),
		selected: initial.Clone(),
		search:   search,
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		config:   cfg,
		width:    cfg.Width,
		height:   cfg.Height,
		state:    StateBrowse,
	}
	m.refilter()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.state = StateCanceled
			return m, tea.Quit
		}
		if m.state == StateSearch {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, m.keymap.Home):
		m.moveCursor(-len(m.visible))
	case key.Matches(msg, m.keymap.End):
		m.moveCursor(len(m.visible))
	case key.Matches(msg, m.keymap.Toggle):
		if def, ok := m.current(); ok {
			m.selected.Toggle(def.Value)
		}
	case key.Matches(msg, m.keymap.Reset):
		m.selected = m.original.Clone()
	case key.Matches(msg, m.keymap.Clear):
		m.selected = flags.NewSet()
	case key.Matches(msg, m.keymap.Search):
		m.state = StateSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Accept):
		m.state = StateAccepted
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateCanceled
		return m, tea.Quit
	}
	return m, nil
}

// updateSearch feeds keys to the query. Enter keeps the filter, Esc drops it.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.state = StateBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.state = StateBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.refilter()
		return m, nil
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

// refilter rebuilds the visible list from the current query. Active flags
// sort first, so the list is only rebuilt when the query changes.
func (m *Model) refilter() {
	m.visible = m.catalog.Search(m.search.Value(), m.selected)
	m.cursor = 0
	m.offset = 0
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(len(m.visible)-1, m.cursor+delta))
	m.clampOffset()
}

func (m *Model) clampOffset() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = max(0, min(m.offset, len(m.visible)-page))
}

func (m Model) pageSize() int {
	return max(3, m.height-chromeLines)
}

func (m Model) current() (flags.Definition, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return flags.Definition{}, false
	}
	return m.visible[m.cursor], true
}

// Selected returns a copy of the edited set.
func (m Model) Selected() flags.Set {
	return m.selected.Clone()
}

// Mask returns the encoded value of the edited set.
func (m Model) Mask() uint64 {
	return flags.Encode(m.selected)
}

// Changed reports whether the edited set differs from the starting one.
func (m Model) Changed() bool {
	return !slices.Equal(m.selected.Values(), m.original.Values())
}

// State returns the editor state.
func (m Model) State() State {
	return m.state
}

// Accepted reports whether the user confirmed the edit.
func (m Model) Accepted() bool {
	return m.state == StateAccepted
}
