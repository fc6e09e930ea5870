// Package tui is the live transcript terminal UI: a live view that tails the
// transcript and a scroll view over a frozen snapshot, driven by a fixed-rate
// tick so the display re-derives from session state every frame.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcllobet/mother-in-law-decoder/internal/config"
	"github.com/jcllobet/mother-in-law-decoder/internal/export"
	"github.com/jcllobet/mother-in-law-decoder/internal/fsm"
	"github.com/jcllobet/mother-in-law-decoder/internal/scroll"
	"github.com/jcllobet/mother-in-law-decoder/internal/session"
	"github.com/jcllobet/mother-in-law-decoder/internal/token"
	"github.com/jcllobet/mother-in-law-decoder/internal/transcript"
	"github.com/jcllobet/mother-in-law-decoder/internal/ui"
)

const tickInterval = 100 * time.Millisecond

// Feed is the live recognition source the UI polls each tick.
type Feed interface {
	Snapshot() []token.Token
	Err() error
	DeviceDescription() string
}

type tickMsg time.Time

type segmentSavedMsg struct {
	result session.SegmentResult
	err    error
}

type copiedMsg struct {
	err error
}

// Model is the root bubbletea model.
type Model struct {
	sess      *session.Session
	feed      Feed
	control   *Control
	clipboard *export.Clipboard

	state fsm.State

	scrollMode bool
	window     scroll.Window
	liveLines  int
	pageSize   int

	resumedTokens   int
	resumedSegments int
	resumedSpeakers int

	statusMessage string
	errorMessage  string
	quitting      bool
	width         int
}

// New builds the UI model for a session that is already streaming.
func New(sess *session.Session, feed Feed, control *Control, clipboard *export.Clipboard, uiCfg config.UIConfig) Model {
	m := Model{
		sess:      sess,
		feed:      feed,
		control:   control,
		clipboard: clipboard,
		state:     fsm.StateListening,
		liveLines: uiCfg.LiveLines,
		pageSize:  uiCfg.PageSize,
	}
	if m.liveLines < 1 {
		m.liveLines = 24
	}
	if m.pageSize < 1 {
		m.pageSize = 20
	}
	if sess.Resumed() {
		m.resumedTokens = len(sess.Tokens())
		m.resumedSegments = sess.SegmentCount()
		m.resumedSpeakers = len(sess.SpeakerIDs())
	}
	if control != nil {
		control.SetState(m.state)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m.handleTick()

	case segmentSavedMsg:
		return m.handleSegmentSaved(msg)

	case copiedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
		} else {
			m.statusMessage = "Copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.control != nil {
		if m.control.TakeStop() {
			return m.quit()
		}
		if m.control.TakeSave() {
			next, cmd := m.startSave()
			return next, tea.Batch(tick(), cmd)
		}
	}

	if err := m.feed.Err(); err != nil && m.state != fsm.StateError {
		m.errorMessage = err.Error()
		m.transition(fsm.EventFail)
	}

	if m.scrollMode {
		m.window = m.window.WithLines(m.transcriptLines())
	}

	return m, tick()
}

func (m Model) handleSegmentSaved(msg segmentSavedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, session.ErrNoTokens):
		m.statusMessage = "Nothing to save yet"
	case msg.err != nil:
		m.errorMessage = fmt.Sprintf("save segment: %v", msg.err)
	default:
		m.statusMessage = fmt.Sprintf("Saved segment %03d", msg.result.Index)
	}
	m.transition(fsm.EventSaved)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scrollMode {
		return m.handleScrollKey(msg.String()), nil
	}
	return m.handleLiveKey(msg.String())
}

func (m Model) handleLiveKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m.quit()
	case "v":
		if !m.sess.HasTokens() {
			m.errorMessage = "No transcript yet"
			return m, nil
		}
		m.scrollMode = true
		m.window = scroll.NewWindow(m.transcriptLines(), m.pageSize)
	case "s":
		next, cmd := m.startSave()
		return next, cmd
	case "c":
		return m, m.copyCmd()
	}
	return m, nil
}

func (m Model) handleScrollKey(key string) Model {
	switch key {
	case "q", "esc", "v":
		m.scrollMode = false
	case "j", "down":
		m.window = m.window.LineDown()
	case "k", "up":
		m.window = m.window.LineUp()
	case "d", "pgdown":
		m.window = m.window.PageDown()
	case "u", "pgup":
		m.window = m.window.PageUp()
	case "g":
		m.window = m.window.Top()
	case "G":
		m.window = m.window.Bottom()
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.transition(fsm.EventStop)
	return m, tea.Quit
}

func (m Model) startSave() (Model, tea.Cmd) {
	if m.state != fsm.StateListening {
		return m, nil
	}
	m.transition(fsm.EventSave)
	sess := m.sess
	return m, func() tea.Msg {
		result, err := sess.SaveSegment(context.Background())
		return segmentSavedMsg{result: result, err: err}
	}
}

func (m Model) copyCmd() tea.Cmd {
	clipboard := m.clipboard
	text := transcript.RenderPlain(transcript.Fold(m.sess.TargetLanguage(), m.sess.Tokens()))
	return func() tea.Msg {
		if clipboard == nil {
			return copiedMsg{err: fmt.Errorf("clipboard not configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return copiedMsg{err: clipboard.Copy(ctx, text)}
	}
}

// transition applies an FSM event, publishing the new state to the control
// bridge. Invalid transitions leave the state unchanged.
func (m *Model) transition(event fsm.Event) {
	next, err := fsm.Transition(m.state, event)
	if err != nil {
		return
	}
	m.state = next
	if m.control != nil {
		m.control.SetState(next)
	}
}

// transcriptLines renders the full styled transcript and splits it for the
// scroll window.
func (m Model) transcriptLines() []string {
	return strings.Split(m.renderTranscript(), "\n")
}

// renderTranscript folds finalized history plus the latest provisional
// snapshot into styled text.
func (m Model) renderTranscript() string {
	target := m.sess.TargetLanguage()
	tokens := append(m.sess.Tokens(), m.feed.Snapshot()...)
	return ui.RenderStyled(transcript.Fold(target, tokens), target)
}
