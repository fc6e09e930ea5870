package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

func original(speakerID int, text, lang string, final bool) token.Token {
	return token.Token{
		Text:              text,
		Speaker:           &speakerID,
		Language:          lang,
		TranslationStatus: token.StatusOriginal,
		IsFinal:           final,
	}
}

func translation(speakerID int, text, lang, sourceLang string, final bool) token.Token {
	return token.Token{
		Text:              text,
		Speaker:           &speakerID,
		Language:          lang,
		SourceLanguage:    sourceLang,
		TranslationStatus: token.StatusTranslation,
		IsFinal:           final,
	}
}

func textRuns(runs []Run) []Run {
	var out []Run
	for _, run := range runs {
		if run.Kind == RunText {
			out = append(out, run)
		}
	}
	return out
}

func TestFoldPairsOriginalWithTranslation(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Bonjour", "fr", true),
		translation(1, "Hello", "en", "fr", true),
	})

	require.Equal(t, "Speaker 1: Bonjour (Hello)", RenderPlain(runs))

	texts := textRuns(runs)
	require.Len(t, texts, 1)
	require.Equal(t, "fr", texts[0].Language)
	require.True(t, texts[0].Final)
	require.True(t, texts[0].ShowMarker)
}

func TestFoldSpeakerChangeStartsNewRun(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Hi", "en", true),
		original(2, " Hola", "es", true),
	})

	require.Equal(t, "Speaker 1: Hi\n\nSpeaker 2: Hola", RenderPlain(runs))

	require.Equal(t, RunSpeaker, runs[0].Kind)
	require.True(t, runs[0].Opening)
	require.Equal(t, RunSpeaker, runs[2].Kind)
	require.False(t, runs[2].Opening)

	// A fresh speaker always re-displays the language marker.
	texts := textRuns(runs)
	require.Len(t, texts, 2)
	require.True(t, texts[0].ShowMarker)
	require.True(t, texts[1].ShowMarker)
}

func TestFoldSkipsSelfTranslation(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Hello there", "en", true),
		translation(1, "Hello there", "en", "en", true),
	})

	rendered := RenderPlain(runs)
	require.Equal(t, "Speaker 1: Hello there", rendered)
	require.NotContains(t, rendered, "(")
}

func TestFoldLanguageSwitchFlushesPair(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Hola", "es", true),
		translation(1, "Hi", "en", "es", true),
		original(1, " Bonjour", "fr", true),
	})

	texts := textRuns(runs)
	require.Len(t, texts, 2)
	require.Equal(t, "Hola", texts[0].Original)
	require.Equal(t, "Hi", texts[0].Translation)
	require.Equal(t, "es", texts[0].Language)
	require.True(t, texts[0].ShowMarker)
	require.Equal(t, " Bonjour", texts[1].Original)
	require.Equal(t, "fr", texts[1].Language)
	require.True(t, texts[1].ShowMarker)
}

func TestFoldNewOriginalAfterCompletedPairClearsMarker(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Hola", "es", true),
		translation(1, "Hi", "en", "es", true),
		original(1, " amigos", "es", true),
		translation(1, " friends", "en", "es", true),
	})

	texts := textRuns(runs)
	require.Len(t, texts, 2)
	require.True(t, texts[0].ShowMarker)
	require.False(t, texts[1].ShowMarker)
	require.Equal(t, "Speaker 1: Hola (Hi) amigos (friends)", RenderPlain(runs))
}

func TestFoldNonFinalTokenTaintsRun(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Esto", "es", true),
		original(1, " es", "es", false),
	})

	texts := textRuns(runs)
	require.Len(t, texts, 1)
	require.False(t, texts[0].Final)
	require.Equal(t, "Esto es", texts[0].Original)
}

func TestFoldStripsEndMarkers(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Adios<end>", "es", true),
		translation(1, "Bye<END>", "en", "es", true),
	})

	require.Equal(t, "Speaker 1: Adios (Bye)", RenderPlain(runs))
}

func TestFoldEmitsNothingForEmptyBuffers(t *testing.T) {
	t.Parallel()

	require.Empty(t, Fold("en", nil))
	require.Empty(t, textRuns(Fold("en", []token.Token{original(1, "<end>", "es", true)})))
}

func TestFoldIdempotent(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		original(1, "Hola", "es", true),
		translation(1, "Hi", "en", "es", true),
		original(2, " Bonjour", "fr", true),
		original(2, " tout le monde", "fr", false),
		translation(2, "Hello everyone", "en", "fr", false),
	}

	first := RenderPlain(Fold("en", tokens))
	second := RenderPlain(Fold("en", tokens))
	require.Equal(t, first, second)
}

func TestFoldSpeakerChangeTrimsLeadingWhitespace(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "  \tHola", "es", true),
	})
	require.Equal(t, "Speaker 1: Hola", RenderPlain(runs))
}

func TestFoldTokensWithoutSpeakerJoinCurrentRun(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		original(1, "Uno", "es", true),
		{Text: " dos", Language: "es", TranslationStatus: token.StatusOriginal, IsFinal: true},
	})

	require.Equal(t, "Speaker 1: Uno dos", RenderPlain(runs))
}

func TestReduceStepwiseMatchesFold(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		original(1, "Hola", "es", true),
		translation(1, "Hi", "en", "es", true),
		original(1, " Bonjour", "fr", true),
	}

	s := NewState("en")
	var runs []Run
	for _, tok := range tokens {
		var emitted []Run
		s, emitted = Reduce(s, tok)
		runs = append(runs, emitted...)
	}
	runs = append(runs, Finish(s)...)

	require.Equal(t, Fold("en", tokens), runs)
}

func TestRenderPlainTranslationOnlyRun(t *testing.T) {
	t.Parallel()

	runs := Fold("en", []token.Token{
		translation(1, "Hello", "en", "es", true),
	})
	require.Equal(t, "Speaker 1:  (Hello)", RenderPlain(runs))
}
