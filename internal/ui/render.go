package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcllobet/mother-in-law-decoder/internal/language"
	"github.com/jcllobet/mother-in-law-decoder/internal/transcript"
)

// flagTextCodes covers languages without an official country flag.
var flagTextCodes = map[string]string{
	"ca": "[CAT]",
	"eu": "[BAS]",
	"gl": "[GAL]",
}

// LanguageMarker returns the inline marker shown when a run's language needs
// identifying: a flag emoji, or a bracketed code where no flag exists.
func LanguageMarker(code string) string {
	if text, ok := flagTextCodes[code]; ok {
		return text
	}
	return language.Flag(code)
}

// RenderStyled renders transcript runs as colored terminal text. Originals
// take their language's color, translations render white in dim parentheses,
// and in-progress runs render italic until they finalize.
func RenderStyled(runs []transcript.Run, targetLanguage string) string {
	var b strings.Builder
	for _, run := range runs {
		switch run.Kind {
		case transcript.RunSpeaker:
			if !run.Opening {
				b.WriteString("\n\n")
			}
			emoji, style := SpeakerStyle(run.Speaker)
			b.WriteString(emoji)
			b.WriteString(" ")
			b.WriteString(style.Render(transcript.SpeakerLabel(run.Speaker) + ":"))
			b.WriteString(" ")
		case transcript.RunText:
			renderTextRun(&b, run, targetLanguage)
		}
	}
	return b.String()
}

func renderTextRun(b *strings.Builder, run transcript.Run, targetLanguage string) {
	color := defaultLanguageColor
	if run.Language != "" {
		color = LanguageColor(run.Language, targetLanguage)
	}

	originalStyle := lipgloss.NewStyle().Foreground(color)
	translationStyle := TranslationStyle
	if !run.Final {
		originalStyle = originalStyle.Italic(true).Faint(true)
		translationStyle = PendingTranslationStyle
	}

	if run.Original != "" {
		b.WriteString(originalStyle.Render(run.Original))
	}
	if run.Final && run.ShowMarker && run.Language != "" {
		b.WriteString(DimStyle.Render(" " + LanguageMarker(run.Language)))
	}
	if run.Translation != "" {
		b.WriteString(DimStyle.Render(" ("))
		b.WriteString(translationStyle.Render(run.Translation))
		b.WriteString(DimStyle.Render(")"))
	}
}
