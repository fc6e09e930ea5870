package tui

import (
	"fmt"
	"strings"

	"github.com/jcllobet/mother-in-law-decoder/internal/fsm"
	"github.com/jcllobet/mother-in-law-decoder/internal/ui"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.scrollMode {
		b.WriteString(m.renderScrollBody())
	} else {
		b.WriteString(m.renderLiveBody())
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("🎙 Live Decoder"))
	if device := m.feed.DeviceDescription(); device != "" {
		b.WriteString(ui.DimStyle.Render("  " + device))
	}
	if m.resumedTokens > 0 {
		b.WriteString("\n")
		b.WriteString(ui.ResumeStyle.Render(fmt.Sprintf("🎁 Resumed (%d tokens, %d segments, %d speakers)",
			m.resumedTokens, m.resumedSegments, m.resumedSpeakers)))
	}
	return b.String()
}

// renderLiveBody tails the transcript, keeping the last liveLines lines and
// noting how much is hidden above.
func (m Model) renderLiveBody() string {
	full := m.renderTranscript()
	if full == "" {
		return ui.PendingStyle.Render("Waiting for speech...")
	}

	lines := strings.Split(full, "\n")
	if len(lines) <= m.liveLines {
		return full
	}

	hidden := len(lines) - m.liveLines
	visible := lines[hidden:]
	return ui.TruncationStyle.Render(fmt.Sprintf("↑ %d more (v=scroll)", hidden)) +
		"\n" + strings.Join(visible, "\n")
}

func (m Model) renderScrollBody() string {
	visible := m.window.Lines()
	if len(visible) == 0 {
		return ui.DimStyle.Render("No content")
	}
	return strings.Join(visible, "\n")
}

func (m Model) renderStatusBar() string {
	var b strings.Builder

	if m.scrollMode {
		b.WriteString(ui.ScrollBadgeStyle.Render(" SCROLL "))
		start := m.window.Offset() + 1
		end := m.window.Offset() + len(m.window.Lines())
		b.WriteString(ui.ScrollRangeStyle.Render(fmt.Sprintf(" %d-%d/%d", start, end, m.window.Total())))
	} else {
		b.WriteString(ui.LiveBadgeStyle.Render(" LIVE "))
	}

	b.WriteString(" │ ")
	b.WriteString(ui.SessionNameStyle.Render(m.sess.Name()))
	b.WriteString(ui.StatusStyle.Render(fmt.Sprintf(" │ %d tokens", len(m.sess.Tokens()))))
	b.WriteString(ui.StatusStyle.Render(fmt.Sprintf(" │ Langs: %s → %s",
		strings.Join(m.sess.SourceLanguages(), ","), m.sess.TargetLanguage())))

	switch {
	case m.errorMessage != "":
		b.WriteString(ui.ErrorStyle.Render(" │ " + m.errorMessage))
	case m.state == fsm.StateSaving:
		b.WriteString(ui.StatusStyle.Render(" │ Saving..."))
	case m.statusMessage != "":
		b.WriteString(ui.StatusStyle.Render(" │ " + m.statusMessage))
	}

	return b.String()
}

func (m Model) renderFooter() string {
	hints := [][2]string{
		{"v", "scroll"}, {"s", "save"}, {"c", "copy"}, {"q", "quit"},
	}
	if m.scrollMode {
		hints = [][2]string{
			{"j↓k↑", "scroll"}, {"du", "page"}, {"gG", "ends"}, {"q", "exit"},
		}
	}

	var b strings.Builder
	for _, hint := range hints {
		b.WriteString(" ")
		b.WriteString(ui.FooterKeyStyle.Render(hint[0]))
		b.WriteString(ui.FooterDescStyle.Render("=" + hint[1]))
	}
	return b.String()
}
