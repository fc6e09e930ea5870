package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcllobet/mother-in-law-decoder/internal/transcript"
)

func TestLanguageColorTargetIsWhite(t *testing.T) {
	t.Parallel()

	require.Equal(t, ColorWhite, LanguageColor("en", "en"))
	require.Equal(t, ColorWhite, LanguageColor("es", "es"))
}

func TestLanguageColorKnownAndFallback(t *testing.T) {
	t.Parallel()

	require.NotEqual(t, defaultLanguageColor, LanguageColor("es", "en"))
	require.Equal(t, defaultLanguageColor, LanguageColor("xx", "en"))
}

func TestSpeakerStyleWrapsAroundTable(t *testing.T) {
	t.Parallel()

	firstEmoji, _ := SpeakerStyle(0)
	wrappedEmoji, _ := SpeakerStyle(len(speakerStyles))
	require.Equal(t, firstEmoji, wrappedEmoji)

	secondEmoji, _ := SpeakerStyle(1)
	require.NotEqual(t, firstEmoji, secondEmoji)
}

func TestLanguageMarkerUsesTextCodesForFlaglessLanguages(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[CAT]", LanguageMarker("ca"))
	require.Equal(t, "[BAS]", LanguageMarker("eu"))
	require.Equal(t, "🇪🇸", LanguageMarker("es"))
}

func TestRenderStyledLaysOutSpeakerAndPair(t *testing.T) {
	t.Parallel()

	runs := []transcript.Run{
		{Kind: transcript.RunSpeaker, Speaker: 1, Opening: true},
		{Kind: transcript.RunText, Original: "Hola", Translation: "Hello", Language: "es", Final: true, ShowMarker: true},
	}

	out := RenderStyled(runs, "en")
	require.Contains(t, out, "Speaker 1:")
	require.Contains(t, out, "Hola")
	require.Contains(t, out, "🇪🇸")
	require.Contains(t, out, "(")
	require.Contains(t, out, "Hello")
	require.Contains(t, out, ")")
	require.NotContains(t, out, "\n\n")
}

func TestRenderStyledSeparatesSpeakersWithParagraphBreak(t *testing.T) {
	t.Parallel()

	runs := []transcript.Run{
		{Kind: transcript.RunSpeaker, Speaker: 1, Opening: true},
		{Kind: transcript.RunText, Original: "Hi", Language: "en", Final: true, ShowMarker: true},
		{Kind: transcript.RunSpeaker, Speaker: 2},
		{Kind: transcript.RunText, Original: "Hola", Language: "es", Final: true, ShowMarker: true},
	}

	out := RenderStyled(runs, "en")
	require.Equal(t, 2, strings.Count(out, "\n"))
	require.Contains(t, out, "Speaker 1:")
	require.Contains(t, out, "Speaker 2:")
}

func TestRenderStyledHidesMarkerOnPendingRuns(t *testing.T) {
	t.Parallel()

	runs := []transcript.Run{
		{Kind: transcript.RunText, Original: "todav", Language: "es", Final: false, ShowMarker: true},
	}

	out := RenderStyled(runs, "en")
	require.Contains(t, out, "todav")
	require.NotContains(t, out, "🇪🇸")
}
