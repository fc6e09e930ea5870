// Package langpick is the interactive language selector shown when a session
// has no language configuration yet. Typing filters the list; arrows move the
// cursor inside a fixed 15-item window.
package langpick

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcllobet/mother-in-law-decoder/internal/language"
	"github.com/jcllobet/mother-in-law-decoder/internal/ui"
)

// ErrCancelled is returned when the user aborts the picker.
var ErrCancelled = errors.New("language selection cancelled")

const (
	windowSize   = 15
	windowBefore = 7
)

// Model is a bubbletea model for single or multi language selection.
type Model struct {
	title string
	multi bool

	search   string
	filtered []language.Option
	cursor   int
	selected map[string]bool

	result    []string
	cancelled bool
	done      bool
}

// New builds a picker. With multi set, space toggles entries and enter
// confirms the set; otherwise enter picks the entry under the cursor.
func New(title string, multi bool) Model {
	return Model{
		title:    title,
		multi:    multi,
		filtered: language.Search(""),
		selected: map[string]bool{},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "ctrl+c":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case " ":
		if m.multi && m.cursor < len(m.filtered) {
			code := m.filtered[m.cursor].Code
			if m.selected[code] {
				delete(m.selected, code)
			} else {
				m.selected[code] = true
			}
		}
	case "enter":
		if m.multi {
			if len(m.selected) == 0 {
				return m, nil
			}
			m.result = selectedCodes(m.selected)
			m.done = true
			return m, tea.Quit
		}
		if m.cursor < len(m.filtered) {
			m.result = []string{m.filtered[m.cursor].Code}
			m.done = true
			return m, tea.Quit
		}
	case "backspace":
		if m.search != "" {
			m.search = m.search[:len(m.search)-1]
			m.refilter()
		}
	default:
		if len(keyMsg.Runes) == 1 && isSearchRune(keyMsg.Runes[0]) {
			m.search += strings.ToLower(string(keyMsg.Runes))
			m.refilter()
		}
	}

	return m, nil
}

func (m *Model) refilter() {
	m.filtered = language.Search(m.search)
	if m.cursor > len(m.filtered)-1 {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(ui.DimStyle.Render("Search: "))
	b.WriteString(m.search)
	b.WriteString(ui.DimStyle.Render("_"))
	b.WriteString("\n")
	if m.search == "" {
		b.WriteString(ui.DimStyle.Render("Type to search or use arrows to scroll"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	start := m.cursor - windowBefore
	if start < 0 {
		start = 0
	}
	end := start + windowSize
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	if start > 0 {
		b.WriteString(ui.DimStyle.Render(fmt.Sprintf("  ^ %d more above", start)))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		option := m.filtered[i]
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}

		check := ""
		if m.multi {
			check = "[ ] "
			if m.selected[option.Code] {
				check = "[x] "
			}
		}

		line := fmt.Sprintf("%s%s%s - %s %s", prefix, check, option.Code, option.Name, language.Flag(option.Code))
		if i == m.cursor {
			line = ui.SessionNameStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if end < len(m.filtered) {
		b.WriteString(ui.DimStyle.Render(fmt.Sprintf("  v %d more below", len(m.filtered)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.multi {
		b.WriteString(ui.DimStyle.Render("arrows=scroll | space=select | enter=done | esc=cancel"))
	} else {
		b.WriteString(ui.DimStyle.Render("arrows=scroll | enter=select | esc=cancel"))
	}
	return b.String()
}

// Result returns the chosen codes, or ErrCancelled when the picker was
// aborted.
func (m Model) Result() ([]string, error) {
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.result, nil
}

// Run drives a picker to completion on the current terminal.
func Run(title string, multi bool) ([]string, error) {
	final, err := tea.NewProgram(New(title, multi)).Run()
	if err != nil {
		return nil, fmt.Errorf("run language picker: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected picker model type %T", final)
	}
	return model.Result()
}

func selectedCodes(selected map[string]bool) []string {
	codes := make([]string, 0, len(selected))
	for code := range selected {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func isSearchRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
