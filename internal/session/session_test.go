package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcllobet/mother-in-law-decoder/internal/token"
)

func openTestSession(t *testing.T, dir string) *Session {
	t.Helper()
	s, err := Open(Config{
		Name:            "kitchen",
		BaseDir:         dir,
		SourceLanguages: []string{"es", "en"},
		TargetLanguage:  "en",
	})
	require.NoError(t, err)
	return s
}

func TestOpenCreatesSessionDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTestSession(t, dir)
	require.False(t, s.Resumed())
	require.False(t, s.NeedsLanguages())
	require.DirExists(t, filepath.Join(dir, "kitchen"))
}

func TestOpenRequiresName(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{BaseDir: t.TempDir()})
	require.Error(t, err)
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTestSession(t, dir)

	id := 1
	conf := 0.9
	tok := s.Resolve(token.Token{
		Text:               "Hola",
		Speaker:            &id,
		Language:           "es",
		LanguageConfidence: &conf,
		TranslationStatus:  token.StatusOriginal,
		IsFinal:            true,
	})
	require.Equal(t, "es", tok.ResolvedLanguage)
	s.AddToken(tok)
	require.NoError(t, s.SaveState())

	resumed := openTestSession(t, dir)
	require.True(t, resumed.Resumed())
	require.Len(t, resumed.Tokens(), 1)
	require.Equal(t, "Hola", resumed.Tokens()[0].Text)
	require.Equal(t, []string{"es", "en"}, resumed.SourceLanguages())
	require.Equal(t, "en", resumed.TargetLanguage())

	profile, ok := resumed.SpeakerProfile(1)
	require.True(t, ok)
	require.Equal(t, 1, profile.TotalSamples())
	require.Equal(t, "es", profile.LastLanguage())
}

func TestStateFileMatchesHistoricalShape(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTestSession(t, dir)
	id := 2
	s.AddToken(s.Resolve(token.Token{Text: "Oui", Speaker: &id, Language: "fr", IsFinal: true}))
	require.NoError(t, s.SaveState())

	raw, err := os.ReadFile(filepath.Join(dir, "kitchen", "session_state.json"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"name", "updated", "source_languages", "target_language", "segment_count", "tokens", "speaker_profiles"} {
		require.Contains(t, doc, key)
	}

	profiles, ok := doc["speaker_profiles"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, profiles, "2")
	profile, ok := profiles["2"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, profile, "language_counts")
	require.Contains(t, profile, "last_language")
	require.Contains(t, profile, "total_samples")
}

func TestCorruptStateStartsFresh(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sessionDir := filepath.Join(dir, "kitchen")
	require.NoError(t, os.MkdirAll(sessionDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(sessionDir, "session_state.json"), []byte("{not json"), 0o600))

	s := openTestSession(t, dir)
	require.False(t, s.Resumed())
	require.Empty(t, s.Tokens())
	require.Zero(t, s.SegmentCount())
}

func TestMissingLanguagesRequireReconfiguration(t *testing.T) {
	t.Parallel()

	s, err := Open(Config{Name: "plain", BaseDir: t.TempDir()})
	require.NoError(t, err)
	require.True(t, s.NeedsLanguages())

	s.SetLanguages([]string{"es"}, "en")
	require.False(t, s.NeedsLanguages())
	require.Equal(t, []string{"es"}, s.SourceLanguages())
	require.Equal(t, "en", s.TargetLanguage())
}

func TestResumedStateSuppliesLanguages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := openTestSession(t, dir)
	require.NoError(t, s.SaveState())

	resumed, err := Open(Config{Name: "kitchen", BaseDir: dir})
	require.NoError(t, err)
	require.True(t, resumed.Resumed())
	require.False(t, resumed.NeedsLanguages())
	require.Equal(t, []string{"es", "en"}, resumed.SourceLanguages())
}

func TestResolveLowConfidenceUsesSpeakerHistory(t *testing.T) {
	t.Parallel()

	s := openTestSession(t, t.TempDir())
	id := 3
	high := 0.9
	low := 0.2

	s.AddToken(s.Resolve(token.Token{Text: "Hola", Speaker: &id, Language: "es", LanguageConfidence: &high, IsFinal: true}))
	tok := s.Resolve(token.Token{Text: "si", Speaker: &id, Language: "pt", LanguageConfidence: &low, IsFinal: true})
	require.Equal(t, "pt", tok.Language)
	require.Equal(t, "es", tok.ResolvedLanguage)

	profile, ok := s.SpeakerProfile(3)
	require.True(t, ok)
	require.Equal(t, 1, profile.TotalSamples())
}
