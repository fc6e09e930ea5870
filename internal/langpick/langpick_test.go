package langpick

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func drive(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		next, ok := updated.(Model)
		require.True(t, ok)
		m = next
	}
	return m
}

func TestSingleSelectPicksCursorEntry(t *testing.T) {
	t.Parallel()

	m := drive(t, New("Target language", false), "e", "n", "enter")

	codes, err := m.Result()
	require.NoError(t, err)
	require.Equal(t, []string{"en"}, codes)
}

func TestMultiSelectTogglesWithSpace(t *testing.T) {
	t.Parallel()

	m := drive(t, New("Source languages", true),
		"e", "s", " ",
		"backspace", "backspace",
		"e", "n", " ",
		"enter",
	)

	codes, err := m.Result()
	require.NoError(t, err)
	require.Equal(t, []string{"en", "es"}, codes)
}

func TestMultiSelectRequiresSelectionBeforeEnter(t *testing.T) {
	t.Parallel()

	m := drive(t, New("Source languages", true), "enter")
	require.False(t, m.done)

	m = drive(t, m, " ", "enter")
	require.True(t, m.done)
}

func TestEscapeCancels(t *testing.T) {
	t.Parallel()

	m := drive(t, New("Target language", false), "esc")

	_, err := m.Result()
	require.ErrorIs(t, err, ErrCancelled)
}

func TestSearchFiltersAndClampsCursor(t *testing.T) {
	t.Parallel()

	m := drive(t, New("Target language", false), "down", "down", "down")
	require.Equal(t, 3, m.cursor)

	m = drive(t, m, "b", "a", "s", "q")
	require.NotEmpty(t, m.filtered)
	require.Less(t, m.cursor, len(m.filtered))
	require.Equal(t, "eu", m.filtered[0].Code)
}

func TestViewShowsWindowOverflowHints(t *testing.T) {
	t.Parallel()

	m := New("Source languages", true)
	view := m.View()
	require.Contains(t, view, "more below")
	require.NotContains(t, view, "more above")
	require.Contains(t, view, "space=select")
}
