package speaker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileSampleInvariant(t *testing.T) {
	t.Parallel()

	profile := NewProfile(3)
	for _, lang := range []string{"es", "es", "fr", "es", "de", "fr"} {
		profile.AddSample(lang)
	}

	total := 0
	for _, n := range profile.LanguageCounts() {
		total += n
	}
	require.Equal(t, profile.TotalSamples(), total)
	require.Equal(t, "fr", profile.LastLanguage())
}

func TestProfileIgnoresEmptyLanguage(t *testing.T) {
	t.Parallel()

	profile := NewProfile(1)
	profile.AddSample("")
	require.Zero(t, profile.TotalSamples())
	require.Empty(t, profile.LastLanguage())
}

func TestProfileDominantBreaksTiesByFirstSeen(t *testing.T) {
	t.Parallel()

	profile := NewProfile(7)
	profile.AddSample("fr")
	profile.AddSample("es")
	profile.AddSample("es")
	profile.AddSample("fr")
	require.Equal(t, "fr", profile.Dominant())

	profile.AddSample("es")
	require.Equal(t, "es", profile.Dominant())
}

func TestProfileDominantEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, NewProfile(0).Dominant())
}

func TestProfileLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Speaker 4", NewProfile(4).Label())
}

func TestProfileJSONRoundTrip(t *testing.T) {
	t.Parallel()

	profile := NewProfile(2)
	profile.AddSample("zh")
	profile.AddSample("zh")
	profile.AddSample("en")

	data, err := json.Marshal(profile)
	require.NoError(t, err)

	restored := NewProfile(2)
	require.NoError(t, json.Unmarshal(data, restored))
	require.Equal(t, profile.LanguageCounts(), restored.LanguageCounts())
	require.Equal(t, "en", restored.LastLanguage())
	require.Equal(t, 3, restored.TotalSamples())
	require.Equal(t, "zh", restored.Dominant())
}

func TestStoreGetOrCreateAndOrdering(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Get(5)
	store.Get(1)
	store.Get(3)
	store.Get(1)

	require.Equal(t, 3, store.Len())
	require.Equal(t, []int{1, 3, 5}, store.IDs())

	profile, ok := store.Lookup(3)
	require.True(t, ok)
	require.Equal(t, 3, profile.ID)

	_, ok = store.Lookup(9)
	require.False(t, ok)
}
