package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/tui/themes"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(initial flags.Set) Model {
	return NewModel(flags.HandlingFlags, initial, WithTheme(themes.Plain), WithSize(200, 30))
}

// send applies msgs in order and returns the resulting model.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestNewModel(t *testing.T) {
	m := newTestModel(flags.NewSet(0x2000))

	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, uint64(0x2000), m.Mask())
	assert.False(t, m.Changed())
	require.Len(t, m.visible, len(flags.HandlingFlags.Definitions))
	assert.Equal(t, uint64(0x2000), m.visible[0].Value, "active flags sort first")
}

func TestNewModelNilSet(t *testing.T) {
	m := NewModel(flags.WeaponFlags, nil)
	assert.Zero(t, m.Mask())
	assert.Empty(t, m.Selected())
}

func TestToggleAndNavigate(t *testing.T) {
	m := newTestModel(nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, uint64(1), m.Mask())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("x"))
	assert.Equal(t, uint64(3), m.Mask())
	assert.True(t, m.Changed())

	m, _ = send(t, m, runes("x"))
	assert.Equal(t, uint64(1), m.Mask())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor stops at the top")
}

func TestHomeEnd(t *testing.T) {
	m := newTestModel(nil)

	m, _ = send(t, m, runes("G"))
	assert.Equal(t, len(m.visible)-1, m.cursor)
	assert.Positive(t, m.offset)

	m, _ = send(t, m, runes("g"))
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.offset)
}

func TestResetAndClear(t *testing.T) {
	m := newTestModel(flags.NewSet(1, 2))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Zero(t, m.Mask())

	m, _ = send(t, m, runes("r"))
	assert.Equal(t, uint64(3), m.Mask())
	assert.False(t, m.Changed())
}

func TestSearch(t *testing.T) {
	m := newTestModel(nil)

	m, _ = send(t, m, runes("/"))
	require.Equal(t, StateSearch, m.State())

	m, _ = send(t, m, runes("r"), runes("a"), runes("l"), runes("l"), runes("y"))
	require.Len(t, m.visible, 1)
	assert.Equal(t, "has_rally_tyres", m.visible[0].Name)

	// Letters go to the query, not to the browse bindings.
	assert.Equal(t, StateSearch, m.State())
	assert.Zero(t, m.Mask())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("x"))
	assert.Equal(t, StateBrowse, m.State())
	assert.Equal(t, uint64(8), m.Mask())
	assert.Len(t, m.visible, 1, "enter keeps the filter")
}

func TestSearchEscapeClearsQuery(t *testing.T) {
	m := newTestModel(nil)

	m, _ = send(t, m, runes("/"), runes("z"), runes("z"), runes("z"))
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "No flags match")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateBrowse, m.State())
	assert.Len(t, m.visible, len(flags.HandlingFlags.Definitions))

	// Toggling on an empty result is a no-op.
	m, _ = send(t, m, runes("/"), runes("q"), runes("q"), runes("q"), tea.KeyMsg{Type: tea.KeyEnter}, runes("x"))
	assert.Zero(t, m.Mask())
}

func TestAcceptAndCancel(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		wantState State
	}{
		{"enter accepts", tea.KeyMsg{Type: tea.KeyEnter}, StateAccepted},
		{"q cancels", runes("q"), StateCanceled},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, StateCanceled},
		{"ctrl+c cancels", tea.KeyMsg{Type: tea.KeyCtrlC}, StateCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := send(t, newTestModel(nil), tt.msg)
			assert.Equal(t, tt.wantState, m.State())
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(nil)
	m, _ = send(t, m, runes("G"), tea.WindowSizeMsg{Width: 60, Height: 200})

	assert.Equal(t, 60, m.width)
	assert.Equal(t, 0, m.offset, "a tall window shows the whole list")
}

func TestView(t *testing.T) {
	m := newTestModel(flags.NewSet(4))
	view := m.View()

	assert.Contains(t, view, "Edit handling flags")
	assert.Contains(t, view, "[x] has_kers")
	assert.Contains(t, view, "(not recommended)")
	assert.Contains(t, view, "press / to search")
	assert.Contains(t, view, flags.HandlingFlags.Definitions[2].Description)

	m, _ = send(t, m, runes("x"))
	assert.Contains(t, m.View(), "was 4")
}

func TestRunFlagEditor(t *testing.T) {
	var out bytes.Buffer
	set, accepted, err := RunFlagEditor(context.Background(), flags.HandlingFlags, flags.NewSet(),
		WithIO(strings.NewReader("x\r"), &out), WithTheme(themes.Plain))
	require.NoError(t, err)

	assert.True(t, accepted)
	assert.Equal(t, flags.NewSet(1), set)
}

func TestRunFlagEditorCancel(t *testing.T) {
	var out bytes.Buffer
	initial := flags.NewSet(2)
	set, accepted, err := RunFlagEditor(context.Background(), flags.HandlingFlags, initial,
		WithIO(strings.NewReader("x\x03"), &out), WithTheme(themes.Plain))
	require.NoError(t, err)

	assert.False(t, accepted)
	assert.Equal(t, initial, set)
}
