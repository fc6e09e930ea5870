package language

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcllobet/mother-in-law-decoder/internal/speaker"
	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

func tok(speakerID int, language string, confidence float64) token.Token {
	return token.Token{
		Speaker:            &speakerID,
		Language:           language,
		LanguageConfidence: &confidence,
		IsFinal:            true,
	}
}

func TestResolveNoSpeakerReturnsRawLanguage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "fr", Resolve(token.Token{Language: "fr"}, nil))
	require.Equal(t, Default, Resolve(token.Token{}, nil))
}

func TestResolveLowConfidencePrefersHistory(t *testing.T) {
	t.Parallel()

	profile := speaker.NewProfile(1)
	profile.AddSample("es")

	resolved := Resolve(tok(1, "fr", 0.2), profile)
	require.Equal(t, "es", resolved)
	require.Equal(t, 1, profile.TotalSamples())
	require.Zero(t, profile.LanguageCounts()["fr"])
}

func TestResolveHighConfidenceRecordsSample(t *testing.T) {
	t.Parallel()

	profile := speaker.NewProfile(1)
	profile.AddSample("es")

	resolved := Resolve(tok(1, "fr", 0.9), profile)
	require.Equal(t, "fr", resolved)
	require.Equal(t, 2, profile.TotalSamples())
	require.Equal(t, 1, profile.LanguageCounts()["fr"])
	require.Equal(t, "fr", profile.LastLanguage())
}

func TestResolveLowConfidenceWithoutHistoryStillRecords(t *testing.T) {
	t.Parallel()

	profile := speaker.NewProfile(2)
	resolved := Resolve(tok(2, "de", 0.1), profile)
	require.Equal(t, "de", resolved)
	require.Equal(t, 1, profile.TotalSamples())
}

func TestResolveMissingLanguageFallsBack(t *testing.T) {
	t.Parallel()

	profile := speaker.NewProfile(3)
	id := 3

	resolved := Resolve(token.Token{Speaker: &id}, profile)
	require.Equal(t, Default, resolved)
	require.Zero(t, profile.TotalSamples())

	profile.AddSample("pt")
	resolved = Resolve(token.Token{Speaker: &id}, profile)
	require.Equal(t, "pt", resolved)
	require.Equal(t, 1, profile.TotalSamples())
}

func TestResolveAbsentConfidenceTreatedAsFull(t *testing.T) {
	t.Parallel()

	profile := speaker.NewProfile(4)
	profile.AddSample("es")
	id := 4

	resolved := Resolve(token.Token{Speaker: &id, Language: "fr", IsFinal: true}, profile)
	require.Equal(t, "fr", resolved)
	require.Equal(t, 1, profile.LanguageCounts()["fr"])
}

func TestResolveSampleInvariantHolds(t *testing.T) {
	t.Parallel()

	profile := speaker.NewProfile(5)
	sequence := []token.Token{
		tok(5, "es", 0.9),
		tok(5, "fr", 0.2),
		tok(5, "fr", 0.8),
		tok(5, "", 0.9),
		tok(5, "es", 0.4),
	}
	for _, tk := range sequence {
		Resolve(tk, profile)
	}

	total := 0
	for _, n := range profile.LanguageCounts() {
		total += n
	}
	require.Equal(t, profile.TotalSamples(), total)
}

func TestResolveProvisionalTokenLeavesProfileUntouched(t *testing.T) {
	t.Parallel()

	profile := speaker.NewProfile(6)
	provisional := tok(6, "es", 0.9)
	provisional.IsFinal = false

	for i := 0; i < 3; i++ {
		require.Equal(t, "es", Resolve(provisional, profile))
	}
	require.Zero(t, profile.TotalSamples())
	require.Empty(t, profile.LastLanguage())

	require.Equal(t, "es", Resolve(tok(6, "es", 0.9), profile))
	require.Equal(t, 1, profile.TotalSamples())
	require.Equal(t, "es", profile.LastLanguage())
}

func TestRegistryLookups(t *testing.T) {
	t.Parallel()

	require.True(t, Valid("es"))
	require.False(t, Valid("xx"))
	require.Equal(t, "Spanish", Name("es"))
	require.Equal(t, "XX", Name("xx"))
	require.Equal(t, "🌐", Flag("xx"))
	require.Contains(t, AllCodes(), "zh")
}

func TestSearchRanksCodeMatchesFirst(t *testing.T) {
	t.Parallel()

	results := Search("es")
	require.NotEmpty(t, results)
	require.Equal(t, "es", results[0].Code)

	byName := Search("span")
	require.NotEmpty(t, byName)
	require.Equal(t, "es", byName[0].Code)

	all := Search("")
	require.Len(t, all, len(AllCodes()))
}
